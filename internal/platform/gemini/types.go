package gemini

// contentPromptData is the data passed to the card-generation templates.
type contentPromptData struct {
	Content            string
	NumFlashcards      int
	NumMCQs            int
	FormatInstructions string
}

// choicesPromptData is the data passed to the choices templates.
type choicesPromptData struct {
	Input string
}

// responseSchema is the expected structure of a card-generation reply.
type responseSchema struct {
	// Cards is the array of study cards generated from the source content.
	Cards []cardSchema `json:"cards"`
}

// cardSchema is a single card in the API response. Type uses the wire values
// 1 (flashcard) and 2 (MCQ); for MCQs Options hold the three distractors.
type cardSchema struct {
	Term       string   `json:"term"`
	Definition string   `json:"definition"`
	Type       int      `json:"type"`
	Options    []string `json:"options"`
}

// choicesSchema is the expected structure of a choices-generation reply.
type choicesSchema struct {
	CorrectChoice string   `json:"correct_choice"`
	Options       []string `json:"options"`
}
