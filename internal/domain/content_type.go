package domain

// ContentType steers prompt selection during generation. Vocabulary-focused
// prompts emphasize terms and their meanings; knowledge-focused prompts cover
// concepts, facts, and comprehension.
type ContentType string

const (
	// ContentTypeVocab generates vocabulary-focused study material.
	ContentTypeVocab ContentType = "vocab"

	// ContentTypeKnowledge generates comprehensive, concept-focused material.
	// This is the default when no content type is supplied.
	ContentTypeKnowledge ContentType = "knowledge"
)

// Valid reports whether the content type is a known value.
func (t ContentType) Valid() bool {
	return t == ContentTypeVocab || t == ContentTypeKnowledge
}

// ParseContentType normalizes a raw content type string, defaulting empty
// input to ContentTypeKnowledge. Unknown values return ErrInvalidContentType.
func ParseContentType(raw string) (ContentType, error) {
	if raw == "" {
		return ContentTypeKnowledge, nil
	}

	ct := ContentType(raw)
	if !ct.Valid() {
		return "", ErrInvalidContentType
	}

	return ct, nil
}
