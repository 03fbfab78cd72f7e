package model

// SourceState is one snapshot published by the DataSource.
//
//   - Loading or a non-empty Err: views are not computed.
//   - Data == nil otherwise: "no data", views are empty.
type SourceState struct {
	Data    *Dataset
	Loading bool
	Err     string
}

// Ready reports whether views may be computed from this snapshot.
func (s SourceState) Ready() bool {
	return !s.Loading && s.Err == ""
}

// Loaded returns a ready snapshot carrying ds.
func Loaded(ds *Dataset) SourceState {
	return SourceState{Data: ds}
}

// Failed returns a snapshot carrying the source's error message.
func Failed(msg string) SourceState {
	if msg == "" {
		msg = "data source failed"
	}
	return SourceState{Err: msg}
}
