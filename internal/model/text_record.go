package model

// TextRecord is one text record written by a setText call.
type TextRecord struct {
	Node  string  `json:"-"`
	Key   string  `json:"key"`
	Value *string `json:"value"`
}
