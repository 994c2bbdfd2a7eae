package dto

type ChatTurn struct {
	Role    string `json:"role" validate:"required,oneof=user model assistant"`
	Content string `json:"content" validate:"required"`
}

type AskChatbotRequest struct {
	Query               string     `json:"query" validate:"required"`
	ClassId             string     `json:"classId" validate:"required"`
	ConversationHistory []ChatTurn `json:"conversationHistory,omitempty"`
}

type AskChatbotResponse struct {
	Answer string `json:"answer"`
	// Sources lists the file names of the retrieved material backing the
	// answer, empty when nothing was retrieved.
	Sources []string `json:"sources,omitempty"`
}
