package notify

import (
	"context"
	"errors"
	"testing"

	"careerquest/internal/domain/candidate"
	"careerquest/internal/domain/job"
	"careerquest/internal/domain/recommendation"
	"careerquest/internal/pipeline"
	"careerquest/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

type sentMessage struct {
	chatID int64
	text   string
}

type fakeSender struct {
	sent []sentMessage
	fail map[int64]bool
}

func (f *fakeSender) Send(to tele.Recipient, what interface{}, _ ...interface{}) (*tele.Message, error) {
	chat := to.(*tele.Chat)
	if f.fail[chat.ID] {
		return nil, errors.New("blocked by user")
	}
	f.sent = append(f.sent, sentMessage{chatID: chat.ID, text: what.(string)})
	return &tele.Message{}, nil
}

func chatID(v int64) *int64 { return &v }

func reco(title string, score float64, high bool) usecase.Recommendation {
	return usecase.Recommendation{
		Job: job.Offer{Title: title, Company: "OCP <Group>"},
		Result: recommendation.Result{
			Score:         score,
			IsHighMatch:   high,
			Location:      "Casablanca",
			JobSalary:     "10,000 - 14,000 MAD",
			MissingSkills: []string{"Docker"},
		},
	}
}

func TestTelegramDigestSendsOnlyLinkedCandidates(t *testing.T) {
	s := &fakeSender{fail: map[int64]bool{30: true}}
	d := NewTelegramDigest(s, 2, nil)
	d.pause = 0

	batch := []pipeline.CandidateRecommendations{
		{Profile: candidate.Profile{UserID: uuid.New(), TelegramChatID: chatID(10)}, Items: []usecase.Recommendation{reco("Data Analyst", 0.8, true)}},
		{Profile: candidate.Profile{UserID: uuid.New()}, Items: []usecase.Recommendation{reco("DevOps", 0.5, false)}},
		{Profile: candidate.Profile{UserID: uuid.New(), TelegramChatID: chatID(20)}},
		{Profile: candidate.Profile{UserID: uuid.New(), TelegramChatID: chatID(30)}, Items: []usecase.Recommendation{reco("QA", 0.4, false)}},
	}

	stats, err := d.Send(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, DigestStats{Sent: 1, Skipped: 2, Failed: 1}, stats)
	require.Len(t, s.sent, 1)
	assert.Equal(t, int64(10), s.sent[0].chatID)
	assert.Contains(t, s.sent[0].text, "Data Analyst")
}

func TestFormatDigestEscapesAndTruncates(t *testing.T) {
	cr := pipeline.CandidateRecommendations{Items: []usecase.Recommendation{
		reco("Dev <Go>", 0.91, true),
		reco("Data Analyst", 0.62, false),
		reco("DBA", 0.4, false),
	}}

	msg := FormatDigest(cr, 2)
	assert.Contains(t, msg, "Dev &lt;Go&gt;")
	assert.Contains(t, msg, "OCP &lt;Group&gt;")
	assert.Contains(t, msg, "score 91%")
	assert.Contains(t, msg, "⭐")
	assert.Contains(t, msg, "À renforcer : Docker")
	assert.NotContains(t, msg, "DBA")
	assert.Contains(t, msg, "et 1 autres offres")
}

func TestNewBotRejectsEmptyToken(t *testing.T) {
	_, err := NewBot("  ")
	assert.Error(t, err)
}
