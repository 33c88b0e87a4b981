// Package gemini implements the generation.Generator interface using
// Google's Gemini API. It owns prompt template selection, the retry policy
// for API calls, and the mapping of the model's JSON replies into domain
// objects.
package gemini
