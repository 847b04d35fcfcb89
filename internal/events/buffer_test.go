package events

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("buffer", func() {
	It("keeps insertion order", func() {
		buffer := newBuffer()

		for _, d := range []string{"msg1", "msg2", "msg3"} {
			Expect(buffer.PushBack(&message{Kind: RunComputedKind, Data: []byte(d)})).To(Succeed())
		}
		Expect(buffer.Size()).To(Equal(3))
		Expect(buffer.head.Data).To(Equal([]byte("msg1")))
		Expect(buffer.tail.Data).To(Equal([]byte("msg3")))
	})

	It("pops until empty", func() {
		buffer := newBuffer()
		for _, d := range []string{"msg1", "msg2", "msg3"} {
			Expect(buffer.PushBack(&message{Kind: RunDeletedKind, Data: []byte(d)})).To(Succeed())
		}

		for i, want := range []string{"msg1", "msg2", "msg3"} {
			m := buffer.Pop()
			Expect(m).NotTo(BeNil())
			Expect(m.Data).To(Equal([]byte(want)))
			Expect(buffer.Size()).To(Equal(2 - i))
		}

		Expect(buffer.head).To(BeNil())
		Expect(buffer.tail).To(BeNil())
		Expect(buffer.Pop()).To(BeNil())
	})
})
