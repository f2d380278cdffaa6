// Package notify pushes operator notifications for noteworthy complaint
// activity to a Telegram chat shared by the triage team.
package notify

import (
	"fmt"
	"log"

	"bcms/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier receives complaint lifecycle notices. Implementations must be
// best-effort: a failed notice never fails the mutation that caused it.
type Notifier interface {
	ComplaintFiled(c *models.Complaint)
	ComplaintAssigned(c *models.Complaint, staffName string)
}

// Noop is used when no notification channel is configured.
type Noop struct{}

func (Noop) ComplaintFiled(*models.Complaint)            {}
func (Noop) ComplaintAssigned(*models.Complaint, string) {}

// TelegramNotifier posts notices to a fixed chat via the Bot API.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier connects the bot. Returns an error if the token is
// rejected; callers should fall back to Noop.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Printf("Telegram notifier authorized as @%s", bot.Self.UserName)
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (n *TelegramNotifier) ComplaintFiled(c *models.Complaint) {
	n.send(fmt.Sprintf("New complaint [%s]: %s", c.Category, c.Title))
}

func (n *TelegramNotifier) ComplaintAssigned(c *models.Complaint, staffName string) {
	n.send(fmt.Sprintf("Complaint %q assigned to %s", c.Title, staffName))
}

func (n *TelegramNotifier) send(text string) {
	if _, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, text)); err != nil {
		log.Printf("WARNING: Failed to send Telegram notice: %v", err)
	}
}
