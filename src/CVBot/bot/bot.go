package bot

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/clipvault/clipvault/src/CVApi/data"
	"github.com/clipvault/clipvault/src/CVApi/types"
	"github.com/clipvault/clipvault/src/CVBot/components/scanwatch"
)

type Config struct {
	Token string
	DB    *gorm.DB
	Redis *redis.Client
}

type Bot struct {
	session *discordgo.Session
	db      *gorm.DB
	rdb     *redis.Client
	config  Config
	monitor *scanwatch.Monitor
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func New(config Config) (*Bot, error) {
	// Load settings
	if err := data.LoadSettings(config.DB); err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	// Create Discord session
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	bot := &Bot{
		session: dg,
		db:      config.DB,
		rdb:     config.Redis,
		config:  config,
		ctx:     ctx,
		cancel:  cancel,
	}

	bot.monitor = scanwatch.NewMonitor(scanwatch.MonitorConfig{
		DB:       config.DB,
		Session:  dg,
		Interval: 10 * time.Second,
	})

	dg.AddHandler(bot.onGuildCreate)
	dg.AddHandler(bot.onGuildDelete)
	dg.Identify.Intents = discordgo.IntentsGuilds

	return bot, nil
}

func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open session: %w", err)
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.monitor.Start(b.ctx)
	}()

	log.Println("ClipVault bot started")
	return nil
}

func (b *Bot) Stop() {
	b.cancel()
	b.wg.Wait()
	_ = b.session.Close()
	log.Println("ClipVault bot stopped")
}

// onGuildCreate keeps the guild and channel tables in sync when the bot joins
// or reconnects to a guild.
func (b *Bot) onGuildCreate(_ *discordgo.Session, g *discordgo.GuildCreate) {
	guild := types.Guild{
		ID:      g.ID,
		Name:    g.Name,
		Icon:    g.Icon,
		OwnerID: g.OwnerID,
	}
	// Unscoped so rejoining resurrects a soft-deleted guild
	if err := b.db.Unscoped().Save(&guild).Error; err != nil {
		log.Printf("Error syncing guild %s: %v", g.ID, err)
		return
	}

	for _, ch := range g.Channels {
		if ch.Type != discordgo.ChannelTypeGuildText {
			continue
		}
		channel := types.Channel{
			ID:      ch.ID,
			GuildID: g.ID,
			Name:    ch.Name,
		}
		if err := b.db.Save(&channel).Error; err != nil {
			log.Printf("Error syncing channel %s: %v", ch.ID, err)
		}
	}

	log.Printf("Synced guild %s (%s)", g.Name, g.ID)
}

// onGuildDelete soft-deletes the guild when the bot is removed.
func (b *Bot) onGuildDelete(_ *discordgo.Session, g *discordgo.GuildDelete) {
	if g.Unavailable {
		// outage, not a removal
		return
	}
	if err := b.db.Delete(&types.Guild{}, "id = ?", g.ID).Error; err != nil {
		log.Printf("Error removing guild %s: %v", g.ID, err)
		return
	}
	log.Printf("Removed guild %s", g.ID)
}
