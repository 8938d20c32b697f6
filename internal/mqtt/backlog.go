package mqtt

// msg is a serialized MQTT message queued for replay after reconnect.
type msg struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

// backlog is a fixed-capacity FIFO of messages held while the broker is
// unreachable. The oldest message is dropped on overflow. Not safe for
// concurrent use; RealPublisher holds the lock.
type backlog struct {
	msgs    []msg
	max     int
	dropped int // messages lost to overflow since the last drain
}

func newBacklog(max int) *backlog {
	return &backlog{max: max}
}

func (b *backlog) add(m msg) {
	if len(b.msgs) == b.max {
		b.msgs = b.msgs[1:]
		b.dropped++
	}
	b.msgs = append(b.msgs, m)
}

// drain returns the queued messages in order plus the overflow drop
// count, and leaves the backlog empty.
func (b *backlog) drain() ([]msg, int) {
	out := b.msgs
	n := b.dropped
	b.msgs = nil
	b.dropped = 0
	return out, n
}

func (b *backlog) len() int {
	return len(b.msgs)
}
