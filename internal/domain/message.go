package domain

// MessageType - категория записи журнала (для цвета в клиенте)
type MessageType string

const (
	MsgInfo    MessageType = "INFO"
	MsgCombat  MessageType = "COMBAT"
	MsgWarning MessageType = "WARNING"
	MsgDeath   MessageType = "DEATH"
)

// LogEntry - одна строка журнала
type LogEntry struct {
	Text string      `json:"text"`
	Type MessageType `json:"type"`
}

// MessageLog - ограниченный журнал, старые записи вытесняются первыми
type MessageLog struct {
	capacity int
	entries  []LogEntry
}

func NewMessageLog(capacity int) *MessageLog {
	if capacity < 1 {
		capacity = 1
	}
	return &MessageLog{capacity: capacity, entries: make([]LogEntry, 0, capacity)}
}

// Add добавляет запись, при переполнении выбрасывая самую старую
func (l *MessageLog) Add(text string, typ MessageType) {
	if len(l.entries) == l.capacity {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:len(l.entries)-1]
	}
	l.entries = append(l.entries, LogEntry{Text: text, Type: typ})
}

// Entries возвращает копию журнала от старых к новым
func (l *MessageLog) Entries() []LogEntry {
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *MessageLog) Capacity() int {
	return l.capacity
}

func (l *MessageLog) Len() int {
	return len(l.entries)
}

// Last возвращает последнюю запись (для тестов и клиента)
func (l *MessageLog) Last() (LogEntry, bool) {
	if len(l.entries) == 0 {
		return LogEntry{}, false
	}
	return l.entries[len(l.entries)-1], true
}
