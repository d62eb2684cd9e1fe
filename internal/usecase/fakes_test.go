package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"careerquest/internal/domain/assessment"
	"careerquest/internal/domain/candidate"
	"careerquest/internal/domain/job"
	"careerquest/internal/domain/recommendation"
	"careerquest/internal/domain/skill"
	"careerquest/internal/repository"

	"github.com/google/uuid"
)

type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *memCache) DeleteByPattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	return nil
}

func (c *memCache) SetIfNotExists(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		return false, nil
	}
	c.entries[key] = []byte(value)
	return true, nil
}

func (c *memCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

type event struct {
	candidateID uuid.UUID
	reason      string
}

type recordedEvents struct {
	mu     sync.Mutex
	events []event
}

func (r *recordedEvents) RecommendationsUpdated(candidateID uuid.UUID, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{candidateID: candidateID, reason: reason})
}

type memSkills struct {
	items []skill.Skill
}

func (m *memSkills) ListSkills(_ context.Context, category *skill.Category) ([]skill.Skill, error) {
	out := make([]skill.Skill, 0)
	for _, s := range m.items {
		if category != nil && s.Category != *category {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *memSkills) ListSkillNames(context.Context) ([]string, error) {
	out := make([]string, 0, len(m.items))
	for _, s := range m.items {
		out = append(out, s.Name)
	}
	return out, nil
}

func (m *memSkills) GetSkillByID(_ context.Context, id uuid.UUID) (skill.Skill, error) {
	for _, s := range m.items {
		if s.ID == id {
			return s, nil
		}
	}
	return skill.Skill{}, skill.ErrNotFound
}

func (m *memSkills) GetOrCreateSkill(_ context.Context, name string, category skill.Category) (skill.Skill, bool, error) {
	for _, s := range m.items {
		if s.Name == name {
			return s, false, nil
		}
	}
	s := skill.Skill{ID: uuid.New(), Name: name, Category: category}
	m.items = append(m.items, s)
	return s, true, nil
}

type memCandidates struct {
	profiles map[uuid.UUID]candidate.Profile
	skills   *memSkills
}

func (m *memCandidates) GetProfile(_ context.Context, userID uuid.UUID) (candidate.Profile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return candidate.Profile{}, candidate.ErrNotFound
	}
	return p, nil
}

func (m *memCandidates) UpsertProfile(_ context.Context, p candidate.Profile) error {
	m.profiles[p.UserID] = p
	return nil
}

func (m *memCandidates) AddSkill(ctx context.Context, userID, skillID uuid.UUID) (bool, error) {
	p := m.profiles[userID]
	for _, s := range p.Skills {
		if s.ID == skillID {
			return false, nil
		}
	}
	s, err := m.skills.GetSkillByID(ctx, skillID)
	if err != nil {
		return false, err
	}
	p.Skills = append(p.Skills, s)
	m.profiles[userID] = p
	return true, nil
}

func (m *memCandidates) RemoveSkill(_ context.Context, userID, skillID uuid.UUID) (bool, error) {
	p := m.profiles[userID]
	for i, s := range p.Skills {
		if s.ID == skillID {
			p.Skills = append(p.Skills[:i], p.Skills[i+1:]...)
			m.profiles[userID] = p
			return true, nil
		}
	}
	return false, nil
}

func (m *memCandidates) ListCandidates(context.Context) ([]candidate.Profile, error) {
	out := make([]candidate.Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, p)
	}
	return out, nil
}

type memJobs struct {
	offers []job.Offer
}

func (m *memJobs) GetJobByID(_ context.Context, id uuid.UUID) (job.Offer, error) {
	for _, o := range m.offers {
		if o.ID == id {
			return o, nil
		}
	}
	return job.Offer{}, job.ErrNotFound
}

func (m *memJobs) ListActiveJobs(context.Context) ([]job.Offer, error) {
	out := make([]job.Offer, 0)
	for _, o := range m.offers {
		if o.Status == job.StatusActive {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memJobs) UpsertJobs(_ context.Context, offers []job.Offer) (repository.UpsertStats, error) {
	m.offers = append(m.offers, offers...)
	return repository.UpsertStats{Inserted: len(offers)}, nil
}

type memTests struct {
	tests     map[uuid.UUID]assessment.Test
	questions map[uuid.UUID][]assessment.Question
}

func (m *memTests) ListTests(_ context.Context, activeOnly bool) ([]assessment.Test, error) {
	out := make([]assessment.Test, 0)
	for _, t := range m.tests {
		if activeOnly && !t.IsActive {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *memTests) GetTest(_ context.Context, id uuid.UUID) (assessment.Test, error) {
	t, ok := m.tests[id]
	if !ok {
		return assessment.Test{}, assessment.ErrTestNotFound
	}
	return t, nil
}

func (m *memTests) ListQuestions(_ context.Context, testID uuid.UUID) ([]assessment.Question, error) {
	return m.questions[testID], nil
}

func (m *memTests) AppendQuestions(_ context.Context, testID uuid.UUID, qs []assessment.Question) (int, error) {
	for _, q := range qs {
		q.ID = uuid.New()
		q.TestID = testID
		m.questions[testID] = append(m.questions[testID], q)
	}
	return len(qs), nil
}

type memSubmissions struct {
	byUser map[uuid.UUID][]assessment.Submission
}

func (m *memSubmissions) UpsertSubmission(_ context.Context, s assessment.Submission) (assessment.Submission, error) {
	s.ID = uuid.New()
	s.SubmittedAt = time.Now()
	subs := m.byUser[s.UserID]
	for i := range subs {
		if subs[i].TestID == s.TestID {
			subs[i] = s
			return s, nil
		}
	}
	m.byUser[s.UserID] = append(subs, s)
	return s, nil
}

func (m *memSubmissions) ListByUser(_ context.Context, userID uuid.UUID) ([]assessment.Submission, error) {
	return m.byUser[userID], nil
}

func (m *memSubmissions) ListAll(context.Context) (map[uuid.UUID][]assessment.Submission, error) {
	return m.byUser, nil
}

type memWeights struct {
	w     recommendation.Weights
	saved time.Time
}

func (m *memWeights) GetWeights(context.Context) (recommendation.Weights, time.Time, error) {
	return m.w, m.saved, nil
}

func (m *memWeights) SaveWeights(_ context.Context, w recommendation.Weights) (time.Time, error) {
	m.w = w
	m.saved = time.Now()
	return m.saved, nil
}

type memListing struct {
	calls   []repository.JobListFilter
	results func(f repository.JobListFilter) []job.Offer
}

func (m *memListing) ListJobs(_ context.Context, f repository.JobListFilter) ([]job.Offer, int, error) {
	m.calls = append(m.calls, f)
	rows := m.results(f)
	return rows, len(rows), nil
}

func intPtr(v int) *int { return &v }
