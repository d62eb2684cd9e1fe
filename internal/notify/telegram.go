package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"careerquest/internal/pipeline"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const defaultDigestSize = 5

// Sender is satisfied by *tele.Bot.
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

func NewBot(token string) (*tele.Bot, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("telegram token is empty")
	}
	b, err := tele.NewBot(tele.Settings{Token: token, Synchronous: true})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return b, nil
}

type DigestStats struct {
	Sent    int
	Skipped int
	Failed  int
}

// TelegramDigest sends each candidate with a linked chat their best offers.
type TelegramDigest struct {
	sender Sender
	size   int
	pause  time.Duration
	logger *zap.Logger
}

func NewTelegramDigest(sender Sender, size int, logger *zap.Logger) *TelegramDigest {
	if logger == nil {
		logger = zap.NewNop()
	}
	if size <= 0 {
		size = defaultDigestSize
	}
	return &TelegramDigest{sender: sender, size: size, pause: 50 * time.Millisecond, logger: logger}
}

func (d *TelegramDigest) Send(ctx context.Context, batch []pipeline.CandidateRecommendations) (DigestStats, error) {
	var stats DigestStats
	for _, cr := range batch {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		chatID := cr.Profile.TelegramChatID
		if chatID == nil || *chatID == 0 || len(cr.Items) == 0 {
			stats.Skipped++
			continue
		}

		msg := FormatDigest(cr, d.size)
		if _, err := d.sender.Send(&tele.Chat{ID: *chatID}, msg, tele.ModeHTML, tele.NoPreview); err != nil {
			stats.Failed++
			d.logger.Warn("telegram digest failed",
				zap.String("candidate_id", cr.Profile.UserID.String()),
				zap.Int64("chat_id", *chatID),
				zap.Error(err),
			)
			continue
		}
		stats.Sent++

		if d.pause > 0 {
			select {
			case <-ctx.Done():
				return stats, ctx.Err()
			case <-time.After(d.pause):
			}
		}
	}

	d.logger.Info("telegram digests sent",
		zap.Int("sent", stats.Sent),
		zap.Int("skipped", stats.Skipped),
		zap.Int("failed", stats.Failed),
	)
	return stats, nil
}

// FormatDigest renders the top offers as Telegram HTML.
func FormatDigest(cr pipeline.CandidateRecommendations, size int) string {
	var b strings.Builder
	b.WriteString("<b>Vos meilleures offres CareerQuest</b>\n\n")

	for i, r := range cr.Items {
		if i >= size {
			break
		}
		marker := ""
		if r.IsHighMatch {
			marker = " ⭐"
		}
		fmt.Fprintf(&b, "%d. <b>%s</b> chez %s%s\n", i+1, html.EscapeString(r.Job.Title), html.EscapeString(r.Job.Company), marker)
		fmt.Fprintf(&b, "   📍 %s · 💰 %s · score %.0f%%\n", html.EscapeString(r.Location), html.EscapeString(r.JobSalary), r.Score*100)
		if len(r.MissingSkills) > 0 {
			fmt.Fprintf(&b, "   À renforcer : %s\n", html.EscapeString(strings.Join(r.MissingSkills, ", ")))
		}
	}
	if extra := len(cr.Items) - size; extra > 0 {
		fmt.Fprintf(&b, "\n… et %d autres offres sur la plateforme.", extra)
	}
	return b.String()
}
