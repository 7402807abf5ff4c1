package chat

import "sync"

// Inbox is a FIFO queue of incoming messages. It is safe for concurrent use.
type Inbox struct {
	mu    sync.Mutex
	queue []Message
}

// Enqueue adds a message to the back of the queue.
func (in *Inbox) Enqueue(msg Message) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.queue = append(in.queue, msg)
}

// Dequeue removes and returns the message at the front of the queue.
func (in *Inbox) Dequeue() (Message, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if len(in.queue) == 0 {
		return Message{}, false
	}
	msg := in.queue[0]
	in.queue[0] = Message{}
	in.queue = in.queue[1:]
	return msg, true
}

// Peek returns the message at the front of the queue without removing it.
func (in *Inbox) Peek() (Message, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if len(in.queue) == 0 {
		return Message{}, false
	}
	return in.queue[0], true
}

// Len returns the number of queued messages.
func (in *Inbox) Len() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.queue)
}
