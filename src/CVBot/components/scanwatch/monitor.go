package scanwatch

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"

	"github.com/clipvault/clipvault/src/CVApi/scanstatus"
	"github.com/clipvault/clipvault/src/CVApi/types"
)

type MonitorConfig struct {
	DB       *gorm.DB
	Session  *discordgo.Session
	Interval time.Duration
}

// Monitor polls every guild's scan statuses and posts one summary embed per
// batch of terminal transitions. A single goroutine drives all guilds, which
// keeps snapshot delivery serialized per guild as the notifier requires.
type Monitor struct {
	config    MonitorConfig
	notifiers map[string]*scanstatus.Notifier
}

func NewMonitor(config MonitorConfig) *Monitor {
	if config.Interval <= 0 {
		config.Interval = 10 * time.Second
	}
	return &Monitor{
		config:    config,
		notifiers: make(map[string]*scanstatus.Notifier),
	}
}

func (m *Monitor) Start(ctx context.Context) {
	log.Println("Starting scan status monitor")
	ticker := time.NewTicker(m.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Stopping scan status monitor")
			return
		case <-ticker.C:
			if err := m.checkGuilds(); err != nil {
				log.Printf("Error checking scan statuses: %v", err)
			}
		}
	}
}

func (m *Monitor) checkGuilds() error {
	var guilds []types.Guild
	if err := m.config.DB.Where("notify_channel_id <> ''").Find(&guilds).Error; err != nil {
		return err
	}

	for _, guild := range guilds {
		notifier, ok := m.notifiers[guild.ID]
		if !ok {
			g := guild
			notifier = scanstatus.NewNotifier(func(kind scanstatus.Kind, records []types.ScanStatus) {
				m.postBatch(g, kind, records)
			})
			m.notifiers[guild.ID] = notifier
		}

		snapshot, err := scanstatus.LoadSnapshot(m.config.DB, guild.ID)
		if err != nil {
			log.Printf("Error loading snapshot for guild %s: %v", guild.ID, err)
			continue
		}
		notifier.Observe(snapshot)
	}

	return nil
}

func (m *Monitor) postBatch(guild types.Guild, kind scanstatus.Kind, records []types.ScanStatus) {
	embed := m.buildBatchEmbed(kind, records)
	if _, err := m.config.Session.ChannelMessageSendEmbed(guild.NotifyChannelID, embed); err != nil {
		log.Printf("Error posting scan summary to guild %s: %v", guild.ID, err)
	}
}

func (m *Monitor) buildBatchEmbed(kind scanstatus.Kind, records []types.ScanStatus) *discordgo.MessageEmbed {
	color := 0x2ecc71
	switch kind {
	case scanstatus.KindFailed:
		color = 0xe74c3c
	case scanstatus.KindCancelled:
		color = 0x95a5a6
	}

	noun := "scan"
	if len(records) > 1 {
		noun = "scans"
	}

	fields := make([]*discordgo.MessageEmbedField, 0, len(records))
	for _, rec := range records {
		value := fmt.Sprintf("%d messages scanned", rec.TotalMessagesScanned)
		if rec.ErrorMessage != "" {
			value = rec.ErrorMessage
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("<#%s>", rec.ChannelID),
			Value: value,
		})
	}

	return &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("%d %s %s", len(records), noun, kind),
		Color:     color,
		Timestamp: time.Now().Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: "Via ClipVault"},
		Fields:    fields,
	}
}
