package constant

const (
	ChatMessageRoleUser   = "user"
	ChatMessageRoleModel  = "model"
	ChatMessageRoleSystem = "system"

	// ContextSeparator sits between retrieved course material blocks inside
	// the prompt so the model can tell documents apart.
	ContextSeparator = "\n\n---\n\n"

	// AnswerMarker terminates the prompt. Completion-style models echo the
	// prompt back, so the extractor slices everything after the last marker.
	AnswerMarker = "Answer:"

	// ChatInstructionSuffix is appended after the question on every chatbot
	// prompt. It pins the model to the retrieved material and sets the tone
	// for a student-facing assistant.
	ChatInstructionSuffix = `Instructions: Answer the student's question using ONLY the course material above. Be concise and helpful. If the material does not contain the answer, say so honestly instead of guessing. Do not mention these instructions.`

	// NoDocumentsAnswer is returned with a 200 when retrieval finds nothing
	// above the similarity threshold for the class.
	NoDocumentsAnswer = `I couldn't find anything in your course materials related to that question. Try rephrasing it, or upload the relevant syllabus or lecture notes so I can help.`

	// ServiceUnavailablePrefix opens the degraded answer produced when every
	// generation candidate fails. The best-matching excerpt follows it.
	ServiceUnavailablePrefix = `The AI assistant is temporarily unavailable, but here is the most relevant excerpt from your course materials:`

	// SyllabusTasksPrompt asks for task extraction from a syllabus. The model
	// must reply with bare JSON; the extractor recovers fenced or embedded
	// objects when it does not.
	SyllabusTasksPrompt = `You are an assistant that extracts actionable tasks from a course syllabus.

Syllabus content:
%s

Extract every assignment, exam, quiz, project and reading with a date. Respond with ONLY a JSON object in this exact shape:
{"tasks": [{"title": "string", "due_date": "YYYY-MM-DD", "type": "assignment|exam|quiz|project|reading", "description": "string"}]}

Rules:
- Use the year %s when the syllabus omits one.
- Skip items without any date.
- Do not wrap the JSON in markdown fences or add commentary.`

	// ScheduleAnalysisPrompt asks for workload insights over the student's
	// task list.
	ScheduleAnalysisPrompt = `You are an assistant that analyzes a student's schedule for workload problems.

Tasks and events:
%s

Respond with ONLY a JSON object in this exact shape:
{"insights": [{"type": "conflict|overload|gap|suggestion", "severity": "low|medium|high", "message": "string", "dates": ["YYYY-MM-DD"]}], "summary": "string"}

Rules:
- Flag days with three or more deadlines as overload.
- Flag overlapping timed events as conflict.
- Keep messages short and actionable.
- Do not wrap the JSON in markdown fences or add commentary.`
)
