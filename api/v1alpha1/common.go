package v1alpha1

// MediaTypeXLSX is the content type of the lead export.
const MediaTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DateLayout is the layout of calendar dates on the wire.
const DateLayout = "2006-01-02"

func StringToPackage(s string) Package {
	switch s {
	case string(PackageHouse):
		return PackageHouse
	case string(PackageBuilding):
		return PackageBuilding
	case string(PackageIndustrial):
		return PackageIndustrial
	default:
		return ""
	}
}
