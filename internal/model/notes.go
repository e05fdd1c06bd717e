package model

// Notes is the rendered outcome of the notes pipeline.
type Notes struct {
	Notes      string   `json:"notes"`
	Flashcards []string `json:"flashcards"`
	Chunks     int      `json:"chunks"`
}
