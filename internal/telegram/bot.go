package telegram

import (
	"fmt"
	"strings"

	"go-hh-agent/internal/models"
	"go-hh-agent/internal/scraper"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot posts application results to a single chat.
type Bot struct {
	api    sender
	chatID int64
}

func NewBot(token string, chatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &Bot{
		api:    api,
		chatID: chatID,
	}, nil
}

func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
		")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
		"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
		"}", "\\}", ".", "\\.", "!", "\\!",
	)
	return replacer.Replace(text)
}

func statusLine(out scraper.Outcome) string {
	switch {
	case out.Submitted:
		return "✅ Отклик отправлен"
	case out.Filled:
		return "✍️ Письмо вставлено, ждёт ручной отправки"
	case out.Done:
		return "⚠️ Письмо не вставлено, страница оставлена открытой"
	}
	return fmt.Sprintf("❌ Отклик прерван на этапе %s", out.Stage)
}

// FormatApplication renders the MarkdownV2 message for one application attempt.
func FormatApplication(l models.Listing, out scraper.Outcome) string {
	msgText := fmt.Sprintf("💼 *%s*\n", escapeMarkdown(l.Title))
	//link target must not be escaped except for ) and \
	msgText += fmt.Sprintf("🔗 [Открыть вакансию](%s)\n", strings.NewReplacer(`\`, `\\`, ")", `\)`).Replace(l.URL))
	msgText += escapeMarkdown(statusLine(out)) + "\n"
	if out.Err != nil {
		msgText += fmt.Sprintf("📝 %s\n", escapeMarkdown(out.Err.Error()))
	}
	return msgText
}

func (b *Bot) SendApplication(l models.Listing, out scraper.Outcome) error {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🔗 Вакансия", l.URL),
		),
	)

	msg := tgbotapi.NewMessage(b.chatID, FormatApplication(l, out))
	msg.ParseMode = "MarkdownV2"
	msg.ReplyMarkup = keyboard

	_, err := b.api.Send(msg)
	return err
}

// SendError reports a failed agent command as plain text.
func (b *Bot) SendError(err error) error {
	msg := tgbotapi.NewMessage(b.chatID, fmt.Sprintf("❌ Ошибка агента: %v", err))
	_, sendErr := b.api.Send(msg)
	return sendErr
}

// SendStatus reports session progress as plain text.
func (b *Bot) SendStatus(message string) error {
	msg := tgbotapi.NewMessage(b.chatID, "ℹ️ "+message)
	_, err := b.api.Send(msg)
	return err
}
