// Package estimation computes the installation cost of a lightning protection system.
//
// The cost is a deterministic formula over the building type, height, area, number of
// air terminals (lightning points) and the protection system type. The Estimator holds the
// price tables and is safe for concurrent use: Estimate never mutates it.
package estimation
