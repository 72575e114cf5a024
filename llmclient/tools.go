package llmclient

// Tool names the model may call.
const (
	ToolSendInkRequest  = "send_ink_request"
	ToolSendChatHistory = "send_chat_history"
)

type toolDeclaration struct {
	Type     string       `json:"type"`
	Function toolFunction `json:"function"`
}

type toolFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  toolParameters `json:"parameters"`
}

type toolParameters struct {
	Type       string                   `json:"type"`
	Properties map[string]toolParameter `json:"properties"`
	Required   []string                 `json:"required,omitempty"`
}

type toolParameter struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

func supportTools() []toolDeclaration {
	return []toolDeclaration{
		{
			Type: "function",
			Function: toolFunction{
				Name:        ToolSendInkRequest,
				Description: "Triggers the automatic email request for printer ink to Max.",
				Parameters: toolParameters{
					Type: "object",
					Properties: map[string]toolParameter{
						"color": {
							Type:        "string",
							Description: "The color of the ink/toner cartridge requested (e.g., Cyan, Magenta, Black).",
						},
						"location": {
							Type:        "string",
							Description: "The library location or specific printer location (e.g., Childrens Area, Workroom).",
						},
					},
					Required: []string{"color", "location"},
				},
			},
		},
		{
			Type: "function",
			Function: toolFunction{
				Name:        ToolSendChatHistory,
				Description: "Triggers an email containing the full current conversation history to be sent to Max for investigation.",
				Parameters: toolParameters{
					Type:       "object",
					Properties: map[string]toolParameter{},
				},
			},
		},
	}
}
