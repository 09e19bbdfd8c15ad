package telegram

import (
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"padmon/internal"
	"padmon/models"
	"padmon/utility"
)

// TgBot alerts subscribed BKD staff when an analysis run finds changes
// worth a field visit.
type TgBot struct {
	api           *tgbotapi.BotAPI
	database      internal.Database
	subscriptions map[int]models.UserSubscription
	event         chan MessageContent
	send          chan MessageContent
	lastRun       *models.AnalysisRun
}

type MessageContent struct {
	ChatID int64
	Text   string
}

func NewBot(apiKey string) (*TgBot, error) {
	tgBot := &TgBot{
		subscriptions: make(map[int]models.UserSubscription),
		event:         make(chan MessageContent, 100),
		send:          make(chan MessageContent, 100),
	}
	api, err := tgbotapi.NewBotAPI(apiKey)
	if err != nil {
		return nil, err
	}
	tgBot.api = api
	return tgBot, nil
}

// SetDatabase attach database service
func (b *TgBot) SetDatabase(database internal.Database) {
	b.database = database
}

func (b *TgBot) Start() {
	b.subscriptions = make(map[int]models.UserSubscription)
	if b.database != nil {
		subscriptions, err := b.database.GetSubscriptions()
		if err != nil {
			log.Printf("bot: error getting subscriptions: %v", err)
		} else {
			for _, subscription := range subscriptions {
				b.subscriptions[subscription.UserID] = subscription
			}
		}
	}
	go b.sendPump()
	go b.eventPump()
	go b.updatesPump()
}

// updatesPump listens for user commands
func (b *TgBot) updatesPump() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := b.api.GetUpdatesChan(u)
	if err != nil {
		log.Printf("bot: error getting updates: %v", err)
		return
	}
	for update := range updates {
		if update.Message == nil {
			continue
		}
		if !update.Message.IsCommand() {
			continue
		}
		switch update.Message.Command() {
		case "start":
			subscription := models.UserSubscription{
				UserID:           update.Message.From.ID,
				User:             update.Message.From.UserName,
				SubscriptionType: "analysis",
			}
			b.subscriptions[update.Message.From.ID] = subscription
			msg := fmt.Sprintf("Hello *%v*, you are now subscribed to analysis alerts", update.Message.From.UserName)
			if b.database != nil {
				if err := b.database.AddSubscription(&subscription); err != nil {
					log.Printf("bot: error adding subscription: %v", err)
					msg = fmt.Sprintf("Error adding subscription:\n `%v`", err)
				}
			}
			b.send <- MessageContent{ChatID: update.Message.Chat.ID, Text: msg}
		case "stop":
			delete(b.subscriptions, update.Message.From.ID)
			if b.database != nil {
				if err := b.database.DeleteSubscription(&models.UserSubscription{UserID: update.Message.From.ID}); err != nil {
					log.Printf("bot: error deleting subscription: %v", err)
				}
			}
			b.send <- MessageContent{ChatID: update.Message.Chat.ID, Text: "Your subscription has been removed"}
		case "status":
			b.send <- MessageContent{ChatID: update.Message.Chat.ID, Text: b.composeStatusMessage()}
		}
	}
}

// eventPump sending events to all subscribers
func (b *TgBot) eventPump() {
	for {
		if event, ok := <-b.event; ok {
			for _, subscription := range b.subscriptions {
				b.sendMessage(int64(subscription.UserID), event.Text)
			}
		}
	}
}

// sendPump sending messages to users
func (b *TgBot) sendPump() {
	for {
		if event, ok := <-b.send; ok {
			b.sendMessage(event.ChatID, event.Text)
		}
	}
}

func (b *TgBot) sendMessage(id int64, text string) {
	msg := tgbotapi.NewMessage(id, text)
	msg.ParseMode = "Markdown"
	_, err := b.api.Send(msg)
	if err != nil {
		msg = tgbotapi.NewMessage(id, fmt.Sprintf("Error: %v", err))
		_, err = b.api.Send(msg)
		if err != nil {
			log.Printf("bot: error sending message: %v", err)
		}
	}
}

// OnRunStarted is part of the run listener contract; starts are not alerted.
func (b *TgBot) OnRunStarted(_ *models.AnalysisRun) {}

// OnRunCompleted alerts subscribers when a run has findings that need
// review; quiet runs are not broadcast.
func (b *TgBot) OnRunCompleted(run *models.AnalysisRun) {
	b.lastRun = run
	if run.Summary.HighPriority == 0 && run.Summary.CriticalPriority == 0 {
		return
	}
	msg := fmt.Sprintf("*%v* %v-%v\n", run.District, run.YearStart, run.YearEnd)
	if run.Summary.CriticalPriority > 0 {
		msg += fmt.Sprintf("CRITICAL changes: %v\n", run.Summary.CriticalPriority)
	}
	msg += fmt.Sprintf("HIGH priority changes: %v\n", run.Summary.HighPriority)
	msg += fmt.Sprintf("Land change PBB potential: `%v`\n", utility.FormatRupiah(run.Summary.LandChangePBB))
	msg += fmt.Sprintf("Building tax increase: `%v`\n", utility.FormatRupiah(run.Summary.BuildingTax))
	b.event <- MessageContent{Text: msg}
}

func (b *TgBot) OnRunFailed(run *models.AnalysisRun) {
	b.lastRun = run
	msg := fmt.Sprintf("*%v* %v-%v: analysis failed\n`%v`\n", run.District, run.YearStart, run.YearEnd, sanitize(run.Error))
	b.event <- MessageContent{Text: msg}
}

func (b *TgBot) composeStatusMessage() string {
	if b.lastRun == nil {
		return "No analysis has run yet"
	}
	run := b.lastRun
	msg := fmt.Sprintf("Last run: *%v* %v-%v (%v)\n", run.District, run.YearStart, run.YearEnd, run.Status)
	if run.Status == models.RunCompleted {
		msg += fmt.Sprintf("Parking potential daily: `%v`\n", utility.FormatRupiah(run.Summary.ParkingDaily))
		msg += fmt.Sprintf("Land change PBB: `%v`\n", utility.FormatRupiah(run.Summary.LandChangePBB))
		msg += fmt.Sprintf("Building tax increase: `%v`\n", utility.FormatRupiah(run.Summary.BuildingTax))
	}
	return msg
}

func sanitize(text string) string {
	replacer := strings.NewReplacer("*", "", "_", "", "`", "")
	return replacer.Replace(text)
}
