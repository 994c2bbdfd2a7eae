package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswerFromListSlicesAfterMarker(t *testing.T) {
	raw := `[{"generated_text": "Course material: ...\n\nQuestion: when is the exam?\n\nAnswer: The midterm is on October 12."}]`

	answer := Answer(raw, "Answer:")
	assert.Equal(t, "The midterm is on October 12.", answer)
}

func TestAnswerFromListWithoutMarker(t *testing.T) {
	raw := `[{"generated_text": "The midterm is on October 12."}]`

	answer := Answer(raw, "Answer:")
	assert.Equal(t, "The midterm is on October 12.", answer)
}

func TestAnswerFromObject(t *testing.T) {
	raw := `{"text": "Check chapter 3."}`
	assert.Equal(t, "Check chapter 3.", Answer(raw, "Answer:"))

	raw = `{"content": "See the syllabus."}`
	assert.Equal(t, "See the syllabus.", Answer(raw, "Answer:"))
}

func TestAnswerFromBareString(t *testing.T) {
	assert.Equal(t, "Just text.", Answer("Just text.", "Answer:"))
	assert.Equal(t, "Quoted text.", Answer(`"Quoted text."`, "Answer:"))
}

func TestAnswerFallsBackToApology(t *testing.T) {
	assert.Equal(t, FallbackAnswer, Answer("", "Answer:"))
	assert.Equal(t, FallbackAnswer, Answer("   ", "Answer:"))
	// A list whose entries carry no known text field.
	assert.Equal(t, FallbackAnswer, Answer(`[{"score": 3}]`, "Answer:"))
	// Valid JSON of the wrong shape must not leak to the student verbatim.
	assert.Equal(t, FallbackAnswer, Answer(`{"score": 3}`, "Answer:"))
	assert.Equal(t, FallbackAnswer, Answer(`[1, 2, 3]`, "Answer:"))
}

func TestStructuredJSONDirect(t *testing.T) {
	result := StructuredJSON(`{"tasks": []}`)
	assert.Contains(t, result, "tasks")
}

func TestStructuredJSONFencedBlock(t *testing.T) {
	raw := "Here you go:\n```json\n{\"a\": 1}\n```\nHope that helps!"

	result := StructuredJSON(raw)
	assert.Equal(t, float64(1), result["a"])
}

func TestStructuredJSONBalancedRegion(t *testing.T) {
	raw := `Sure! The result is {"tasks": [{"title": "Essay {draft}"}]} as requested.`

	result := StructuredJSON(raw)
	assert.Contains(t, result, "tasks")
}

func TestStructuredJSONIgnoresBracesInStrings(t *testing.T) {
	raw := `prefix {"message": "use { and } carefully"} suffix`

	result := StructuredJSON(raw)
	assert.Equal(t, "use { and } carefully", result["message"])
}

func TestStructuredJSONUnwrapsListPayload(t *testing.T) {
	raw := "[\"```json\\n{\\\"a\\\":1}\\n```\"]"

	result := StructuredJSON(raw)
	assert.Equal(t, float64(1), result["a"])
}

func TestStructuredJSONUnwrapsListObjectPayload(t *testing.T) {
	raw := `[{"generated_text": "{\"tasks\": []}"}]`

	result := StructuredJSON(raw)
	assert.Contains(t, result, "tasks")
}

func TestStructuredJSONPassthroughOnGarbage(t *testing.T) {
	raw := "I am sorry, I cannot produce JSON today."

	result := StructuredJSON(raw)
	assert.Equal(t, raw, result["rawResponse"])
}
