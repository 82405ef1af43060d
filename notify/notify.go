package notify

import (
	"context"
	"fmt"

	"github.com/killshot-app/killshot/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

type (
	// Telegram posts a short message to a chat when an expense lands.
	Telegram struct {
		bot    *tgbotapi.BotAPI
		chatID int64
	}
)

// NewTelegram ...
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("error creating Telegram Bot API client: %w", err)
	}
	logrus.Infof("Telegram notifier authorized on account %s", bot.Self.UserName)
	return &Telegram{bot: bot, chatID: chatID}, nil
}

// NotifyExpenseCreated ...
func (t *Telegram) NotifyExpenseCreated(ctx context.Context, group *models.Group, payer *models.Member, expense *models.Expense) {
	t.send("%s paid %s for %q in %s, split %s between %d members.",
		payer.Name,
		expense.Amount.Format(),
		expense.Description,
		group.Name,
		expense.SplitType,
		len(expense.Splits),
	)
}

func (t *Telegram) send(format string, args ...interface{}) {
	s := fmt.Sprintf(format, args...)
	msg := tgbotapi.NewMessage(t.chatID, s)
	if _, err := t.bot.Send(msg); err != nil {
		logrus.Errorf("error sending message '%s': %v", s, err)
	} else {
		logrus.Infof("[%s] %s", t.bot.Self.UserName, s)
	}
}
