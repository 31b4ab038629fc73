package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier pushes moderation-worthy events to the admin Telegram chat.
type Notifier interface {
	CampaignSubmitted(campaignID int, title string)
	ItemSubmitted(itemID int, title string)
	DonationRecorded(reference string, amount int64)
}

type telegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier returns nil when the bot token or chat id is not
// configured; callers treat a nil Notifier as disabled.
func NewTelegramNotifier(botToken string, adminChatID int64) Notifier {
	if botToken == "" || adminChatID == 0 {
		return nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Printf("[notify] telegram bot init failed, notifications disabled: %v", err)
		return nil
	}
	return &telegramNotifier{bot: bot, chatID: adminChatID}
}

func (n *telegramNotifier) send(text string) {
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := n.bot.Send(msg); err != nil {
		log.Printf("[notify] telegram send failed: %v", err)
	}
}

func (n *telegramNotifier) CampaignSubmitted(campaignID int, title string) {
	n.send(fmt.Sprintf("📋 Nouvelle cagnotte en attente de modération\n#%d — %s", campaignID, title))
}

func (n *telegramNotifier) ItemSubmitted(itemID int, title string) {
	n.send(fmt.Sprintf("📦 Nouvel objet proposé pour la boutique\n#%d — %s", itemID, title))
}

func (n *telegramNotifier) DonationRecorded(reference string, amount int64) {
	n.send(fmt.Sprintf("💝 Nouveau don en attente de validation\n%s — %d FCFA", reference, amount))
}
