package model

// ChatEntry is one message/reply exchange in the chat history. The history
// is append-only and capped at HistoryLimit entries.
type ChatEntry struct {
	ID      string `json:"id"`
	Time    string `json:"time"`
	User    string `json:"user"`
	Message string `json:"msg"`
	Reply   string `json:"bot"`
}

// HistoryLimit is the number of most recent chat entries kept on every
// append.
const HistoryLimit = 400
