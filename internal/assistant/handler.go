package assistant

import (
	"sps-backend/internal/config"
	"sps-backend/internal/database"

	"github.com/gofiber/fiber/v2"
	openai "github.com/sashabaranov/go-openai"
)

type ChatMessage struct {
	Role    string `json:"role"` // user | assistant
	Content string `json:"content"`
}

type ChatRequest struct {
	Message string        `json:"message"`
	History []ChatMessage `json:"history"`
	LineID  *uint         `json:"lineId"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

func newClient(cfg *config.Config) *openai.Client {
	clientCfg := openai.DefaultConfig(cfg.AIAPIKey)
	if cfg.AIBaseURL != "" {
		// OpenAI uyumlu herhangi bir sağlayıcıya yönlendirilebilir
		clientCfg.BaseURL = cfg.AIBaseURL
	}
	return openai.NewClientWithConfig(clientCfg)
}

// POST /api/chat — asistan hiçbir zaman veri değiştirmez; bağlam
// sadece okuma sorgularıyla kurulur. Sağlayıcı hatası diğer
// özellikleri etkilemez, sohbet yanıtı olarak kullanıcıya döner.
func ChatHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ChatRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Message == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Mesaj boş olamaz")
		}

		if cfg.AIAPIKey == "" {
			return fiber.NewError(fiber.StatusInternalServerError, "AI API anahtarı tanımlı değil")
		}

		dataContext := BuildContext(database.DB, body.LineID)

		messages := []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt + dataContext},
			{Role: openai.ChatMessageRoleAssistant, Content: greeting},
		}
		for _, msg := range body.History {
			role := openai.ChatMessageRoleUser
			if msg.Role == "assistant" {
				role = openai.ChatMessageRoleAssistant
			}
			if msg.Content == "" {
				continue
			}
			messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: body.Message,
		})

		client := newClient(cfg)
		resp, err := client.CreateChatCompletion(c.Context(), openai.ChatCompletionRequest{
			Model:    cfg.AIModel,
			Messages: messages,
		})
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "AI yanıtı alınamadı")
		}

		text := "Üzgünüm, yanıt oluşturamadım."
		if len(resp.Choices) > 0 && resp.Choices[0].Message.Content != "" {
			text = resp.Choices[0].Message.Content
		}

		return c.JSON(ChatResponse{Response: text})
	}
}
