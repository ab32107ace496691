package domain

// MessageKind - класс сообщения журнала.
type MessageKind string

const (
	MessageInfo    MessageKind = "INFO"
	MessageCombat  MessageKind = "COMBAT"
	MessageWarning MessageKind = "WARNING"
	MessageDeath   MessageKind = "DEATH"
	MessageLevelUp MessageKind = "LEVEL_UP"
)

// Message - запись журнала игры, которую показывает клиент.
type Message struct {
	Turn int         `json:"turn"`
	Text string      `json:"text"`
	Kind MessageKind `json:"kind"`
}

// MessageLog хранит последние сообщения, старые вытесняются.
type MessageLog struct {
	limit    int
	dropped  int // сколько вытеснено за всё время
	messages []Message
}

func NewMessageLog(limit int) *MessageLog {
	return &MessageLog{limit: max(limit, 1)}
}

func (l *MessageLog) Add(m Message) {
	l.messages = append(l.messages, m)
	if over := len(l.messages) - l.limit; over > 0 {
		l.messages = append(l.messages[:0], l.messages[over:]...)
		l.dropped += over
	}
}

// All - копия журнала от старых к новым.
func (l *MessageLog) All() []Message {
	return append([]Message(nil), l.messages...)
}

// Since - сообщения начиная с хода turn.
func (l *MessageLog) Since(turn int) []Message {
	var out []Message
	for _, m := range l.messages {
		if m.Turn >= turn {
			out = append(out, m)
		}
	}
	return out
}

// Total - сколько сообщений добавлено за всё время, включая вытесненные.
func (l *MessageLog) Total() int {
	return l.dropped + len(l.messages)
}

// After - сообщения, добавленные после того, как Total был равен n.
func (l *MessageLog) After(n int) []Message {
	start := max(n-l.dropped, 0)
	if start >= len(l.messages) {
		return nil
	}
	return append([]Message(nil), l.messages[start:]...)
}
