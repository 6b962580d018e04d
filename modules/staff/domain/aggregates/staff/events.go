package staff

// CreatedEvent is published after one import row committed: the identity and
// all of its staged ledger rows are durable.
type CreatedEvent struct {
	Result  Staff
	History HistorySet
}

func NewCreatedEvent(result Staff, history HistorySet) *CreatedEvent {
	return &CreatedEvent{Result: result, History: history}
}
