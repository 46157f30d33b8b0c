package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type geminiRequestPart struct {
	Text string `json:"text"`
}

type geminiRequestContent struct {
	Role  string              `json:"role"`
	Parts []geminiRequestPart `json:"parts"`
}

type geminiRequestBody struct {
	Contents []geminiRequestContent `json:"contents"`
}

type geminiResponsePart struct {
	Text string `json:"text"`
}

type geminiResponseCandidate struct {
	Content struct {
		Parts []geminiResponsePart `json:"parts"`
		Role  string               `json:"role"`
	} `json:"content"`
}

type geminiResponseBody struct {
	Candidates []geminiResponseCandidate `json:"candidates"`
}

const assistantPrompt = `You are a helpful and friendly assistant for the 'Stillpoint' coaching and therapy practice. You must follow these rules:
1. Your knowledge base is strictly limited to the following consultations and prices:
   - General Consultation: $90, Sports Coaching Session: $110, Rehabilitation Session: $120, Chronic Condition Support: $100.
2. Answer questions politely based ONLY on this information.
3. If asked about anything else (e.g., medical advice, medication), you MUST respond with: "I can only provide information on our consultations and prices. For any other questions, please contact the practice directly."
4. Do not make up services or prices.
5. If the user asks how to book, explain that consultations are booked through the Book Consultation page after signing in.
6. If the user asks about opening hours, respond with: "The practice is open from 9:00 AM to 5:00 PM, Monday to Friday."`

// HandleChat proxies the visitor's question to the Gemini API with a fixed
// practice-specific system prompt.
func (h *Handler) HandleChat(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message cannot be empty"})
		return
	}

	if h.GeminiAPIKey == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Assistant is not configured"})
		return
	}
	url := "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent?key=" + h.GeminiAPIKey

	requestBody := geminiRequestBody{
		Contents: []geminiRequestContent{
			{
				Role:  "user",
				Parts: []geminiRequestPart{{Text: assistantPrompt}},
			},
			{
				Role:  "model",
				Parts: []geminiRequestPart{{Text: "Understood. I will strictly follow these rules and only answer questions based on the provided consultation list."}},
			},
			{
				Role:  "user",
				Parts: []geminiRequestPart{{Text: req.Message}},
			},
		},
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create request body"})
		return
	}

	httpReq, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create HTTP request"})
		return
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reach AI service"})
		return
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read AI response"})
		return
	}

	if httpResp.StatusCode != http.StatusOK {
		h.Logger.Warn("assistant upstream error", zap.Int("status", httpResp.StatusCode))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI service returned an error"})
		return
	}

	var geminiResp geminiResponseBody
	if err := json.Unmarshal(respBody, &geminiResp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse AI response"})
		return
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": geminiResp.Candidates[0].Content.Parts[0].Text,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "AI returned an empty or invalid response"})
}
