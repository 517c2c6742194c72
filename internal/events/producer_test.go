package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("producer", Ordered, func() {
	Context("write", func() {
		It("writes successfully", func() {
			w := newTestWriter()
			kp := NewEventProducer(w, WithOutputTopic("leads"), WithSource("skyguard.test"))

			err := kp.Write(context.TODO(), LeadMessageKind, bytes.NewReader([]byte(`{"package":"Paket Rumah"}`)))
			Expect(err).To(BeNil())
			Eventually(w.Len).Should(Equal(1))

			e := w.Get(0)
			Expect(e.Type()).To(Equal(LeadMessageKind))
			Expect(e.Source()).To(Equal("skyguard.test"))
			Expect(w.topics[0]).To(Equal("leads"))

			var data map[string]string
			Expect(json.Unmarshal(e.Data(), &data)).To(Succeed())
			Expect(data).To(HaveKeyWithValue("package", "Paket Rumah"))

			err = kp.Write(context.TODO(), ExportMessageKind, bytes.NewReader([]byte(`{}`)))
			Expect(err).To(BeNil())
			Eventually(w.Len).Should(Equal(2))
			Expect(w.Get(1).Type()).To(Equal(ExportMessageKind))

			Expect(kp.Close()).To(Succeed())
			Expect(w.closed).To(BeTrue())
		})

		It("keeps the order of the events", func() {
			w := newTestWriter()
			kp := NewEventProducer(w)

			for _, kind := range []string{"a", "b", "c", "d"} {
				Expect(kp.Write(context.TODO(), kind, bytes.NewReader([]byte("{}")))).To(Succeed())
			}
			Expect(kp.Close()).To(Succeed())

			Expect(w.Len()).To(Equal(4))
			for i, kind := range []string{"a", "b", "c", "d"} {
				Expect(w.Get(i).Type()).To(Equal(kind))
			}
		})

		It("keeps going when the writer fails", func() {
			w := newTestWriter()
			w.fail = true
			kp := NewEventProducer(w)

			Expect(kp.Write(context.TODO(), LeadMessageKind, bytes.NewReader([]byte("{}")))).To(Succeed())
			Expect(kp.Close()).To(Succeed())
			Expect(w.Len()).To(BeZero())
		})
	})

	Context("close", func() {
		It("can be called more than once", func() {
			w := newTestWriter()
			kp := NewEventProducer(w)

			Expect(kp.Write(context.TODO(), LeadMessageKind, bytes.NewReader([]byte("{}")))).To(Succeed())
			Expect(kp.Close()).To(Succeed())
			Expect(func() { _ = kp.Close() }).NotTo(Panic())
			Expect(kp.Close()).To(Succeed())
			Expect(w.Len()).To(Equal(1))
		})

		It("refuses events once closed", func() {
			w := newTestWriter()
			kp := NewEventProducer(w)
			Expect(kp.Close()).To(Succeed())

			err := kp.Write(context.TODO(), LeadMessageKind, bytes.NewReader([]byte("{}")))
			Expect(errors.Is(err, ErrProducerClosed)).To(BeTrue())
			Expect(w.Len()).To(BeZero())
		})
	})
})

type testwriter struct {
	mu       sync.Mutex
	messages []cloudevents.Event
	topics   []string
	fail     bool
	closed   bool
}

func newTestWriter() *testwriter {
	return &testwriter{messages: []cloudevents.Event{}}
}

func (t *testwriter) Write(ctx context.Context, topic string, e cloudevents.Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fail {
		return errors.New("broker unavailable")
	}
	t.messages = append(t.messages, e)
	t.topics = append(t.topics, topic)
	return nil
}

func (t *testwriter) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.messages)
}

func (t *testwriter) Get(i int) cloudevents.Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.messages[i]
}

func (t *testwriter) Close(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}
