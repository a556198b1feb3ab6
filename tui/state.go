package tui

type state int

const (
	browseState state = iota + 1
	playingState
	promptState
	errorState
)
