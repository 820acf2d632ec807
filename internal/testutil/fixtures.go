package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/snoody/tft-tierlist/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	displayName string
	password    string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		displayName: fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
		password:    "testpassword123",
	}
}

// WithDisplayName sets the display name
func (b *UserBuilder) WithDisplayName(name string) *UserBuilder {
	b.displayName = name
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		DisplayName:  b.displayName,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
	} `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// BuildAndAuthenticate creates the user and logs in via the API, returning the user and access token.
// The display name must be in the server's admin list for the login to succeed.
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	b.Build(t, ts.DB.DB)

	reqBody := map[string]string{
		"displayName": b.displayName,
		"password":    b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/login"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var envelope struct {
		Data AuthResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	authResp := envelope.Data

	userID, _ := uuid.Parse(authResp.User.ID)
	user := &domain.User{
		ID:          userID,
		DisplayName: authResp.User.DisplayName,
	}

	return user, authResp.AccessToken
}

// CompositionBuilder creates test compositions with a builder pattern
type CompositionBuilder struct {
	name       string
	tier       domain.Rank
	champions  []domain.ChampionEntry
	synergies  []domain.SynergyEntry
	playstyle  string
	difficulty domain.Difficulty
	videoURL   string
	isActive   bool
	createdAt  time.Time
}

// NewCompositionBuilder creates a new CompositionBuilder with a valid two-unit Juggernaut comp
func NewCompositionBuilder() *CompositionBuilder {
	return &CompositionBuilder{
		name: fmt.Sprintf("Comp %s", uuid.New().String()[:8]),
		tier: domain.RankB,
		champions: []domain.ChampionEntry{
			{Name: "Garen", Cost: 1, Items: []string{}, Stars: 2},
			{Name: "Sett", Cost: 4, Items: []string{"Infinity Edge"}, IsCarry: true, Stars: 2},
		},
		synergies: []domain.SynergyEntry{
			{Name: "Juggernaut", Tier: 1, IsActive: true},
		},
		isActive:  true,
		createdAt: time.Now(),
	}
}

// WithName sets the composition name
func (b *CompositionBuilder) WithName(name string) *CompositionBuilder {
	b.name = name
	return b
}

// WithTier sets the rank
func (b *CompositionBuilder) WithTier(tier domain.Rank) *CompositionBuilder {
	b.tier = tier
	return b
}

// WithChampions replaces the champion list
func (b *CompositionBuilder) WithChampions(champions ...domain.ChampionEntry) *CompositionBuilder {
	b.champions = champions
	return b
}

// WithCarry replaces the champion list with a single lead unit
func (b *CompositionBuilder) WithCarry(name string) *CompositionBuilder {
	b.champions = []domain.ChampionEntry{
		{Name: name, Cost: 3, Items: []string{}, IsCarry: true, Stars: 2},
	}
	return b
}

// WithSynergies replaces the recorded synergies, all marked active
func (b *CompositionBuilder) WithSynergies(names ...string) *CompositionBuilder {
	b.synergies = make([]domain.SynergyEntry, len(names))
	for i, n := range names {
		b.synergies[i] = domain.SynergyEntry{Name: n, Tier: 1, IsActive: true}
	}
	return b
}

// WithPlaystyle sets the playstyle label
func (b *CompositionBuilder) WithPlaystyle(playstyle string) *CompositionBuilder {
	b.playstyle = playstyle
	return b
}

// WithDifficulty sets the difficulty
func (b *CompositionBuilder) WithDifficulty(d domain.Difficulty) *CompositionBuilder {
	b.difficulty = d
	return b
}

// WithVideoURL sets the video link
func (b *CompositionBuilder) WithVideoURL(url string) *CompositionBuilder {
	b.videoURL = url
	return b
}

// Inactive marks the composition as hidden
func (b *CompositionBuilder) Inactive() *CompositionBuilder {
	b.isActive = false
	return b
}

// CreatedAt overrides the creation time
func (b *CompositionBuilder) CreatedAt(at time.Time) *CompositionBuilder {
	b.createdAt = at
	return b
}

// Value returns the composition without persisting it
func (b *CompositionBuilder) Value() *domain.Composition {
	return &domain.Composition{
		ID:          uuid.New(),
		Name:        b.name,
		Champions:   datatypes.NewJSONSlice(b.champions),
		Synergies:   datatypes.NewJSONSlice(b.synergies),
		Tier:        b.tier,
		Positioning: datatypes.NewJSONSlice([]domain.Position{}),
		Augments:    datatypes.NewJSONSlice([]string{}),
		Artifacts:   datatypes.NewJSONSlice([]string{}),
		VideoURL:    b.videoURL,
		TFTSet:      "Set 16",
		Playstyle:   b.playstyle,
		Difficulty:  b.difficulty,
		IsActive:    b.isActive,
		CreatedAt:   b.createdAt,
		UpdatedAt:   b.createdAt,
	}
}

// Build creates the composition in the database
func (b *CompositionBuilder) Build(t *testing.T, db *gorm.DB) *domain.Composition {
	t.Helper()

	comp := b.Value()
	if err := db.Create(comp).Error; err != nil {
		t.Fatalf("failed to create composition: %v", err)
	}

	return comp
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}
