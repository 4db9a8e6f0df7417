// Package queueing provides the fixed-depth circular buffer used to
// hand requests and results between the traffic generators and the
// bus harness.
package queueing

import (
	"log"

	"github.com/sarchlab/sdram/hooking"
	"github.com/sarchlab/sdram/naming"
)

// HookPosBufPush marks when an element is pushed into the buffer.
var HookPosBufPush = &hooking.HookPos{Name: "Buffer Push"}

// HookPosBufPop marks when an element is popped from the buffer.
var HookPosBufPop = &hooking.HookPos{Name: "Buffer Pop"}

// A Buffer is a fixed-depth fifo with independent write and read
// sides. The write side can proceed while the buffer is not full and
// the read side while it is not empty; a value written into an empty
// buffer is visible to the read side immediately.
type Buffer interface {
	naming.Named
	hooking.Hookable

	CanPush() bool
	Push(e interface{})
	Pop() interface{}
	Peek() interface{}
	Empty() bool
	Full() bool
	Capacity() int
	Size() int
	Clear()
}

// BufferBuilder is a builder for Buffer.
type BufferBuilder struct {
	capacity int
}

// WithCapacity sets the fixed depth of the buffer.
func (b BufferBuilder) WithCapacity(capacity int) BufferBuilder {
	b.capacity = capacity
	return b
}

// Build builds an empty Buffer.
func (b BufferBuilder) Build(name string) Buffer {
	if b.capacity <= 0 {
		panic("buffer capacity must be positive")
	}

	return &bufferImpl{
		NamedBase: naming.MakeNamedBase(name),
		elements:  make([]interface{}, b.capacity),
	}
}

type bufferImpl struct {
	naming.NamedBase
	hooking.HookableBase

	elements []interface{}
	head     int
	size     int
}

func (b *bufferImpl) CanPush() bool {
	return b.size < len(b.elements)
}

func (b *bufferImpl) Empty() bool {
	return b.size == 0
}

func (b *bufferImpl) Full() bool {
	return b.size == len(b.elements)
}

func (b *bufferImpl) Push(e interface{}) {
	if b.Full() {
		log.Panic("buffer overflow")
	}

	tail := (b.head + b.size) % len(b.elements)
	b.elements[tail] = e
	b.size++

	if b.NumHooks() > 0 {
		b.InvokeHook(hooking.HookCtx{
			Domain: b,
			Pos:    HookPosBufPush,
			Item:   e,
		})
	}
}

func (b *bufferImpl) Pop() interface{} {
	if b.size == 0 {
		return nil
	}

	e := b.elements[b.head]
	b.elements[b.head] = nil
	b.head = (b.head + 1) % len(b.elements)
	b.size--

	if b.NumHooks() > 0 {
		b.InvokeHook(hooking.HookCtx{
			Domain: b,
			Pos:    HookPosBufPop,
			Item:   e,
		})
	}

	return e
}

func (b *bufferImpl) Peek() interface{} {
	if b.size == 0 {
		return nil
	}

	return b.elements[b.head]
}

func (b *bufferImpl) Capacity() int {
	return len(b.elements)
}

func (b *bufferImpl) Size() int {
	return b.size
}

func (b *bufferImpl) Clear() {
	for i := range b.elements {
		b.elements[i] = nil
	}

	b.head = 0
	b.size = 0
}
