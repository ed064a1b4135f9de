package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	SenderUser = "user"
	SenderBot  = "bot"
)

type ChatMessage struct {
	ID     string    `json:"id"`
	Text   string    `json:"text"`
	Sender string    `json:"sender"`
	At     time.Time `json:"timestamp"`
}

// ChatService is the scripted shopping assistant. It never calls out to a model; replies come from
// keyword rules, with counts read from the live catalog.
type ChatService struct {
	Catalog *CatalogService
	Now     func() time.Time
}

func NewChatService(c *CatalogService) *ChatService {
	return &ChatService{Catalog: c, Now: time.Now}
}

func (s *ChatService) Greeting() ChatMessage {
	return s.bot("Hi there! I'm UniBot. How can I help you find what you need today?")
}

// Reply answers one user message. Rules are checked in order and the first match wins.
func (s *ChatService) Reply(text string) ChatMessage {
	q := strings.ToLower(strings.TrimSpace(text))
	switch {
	case strings.Contains(q, "lab coat") || strings.Contains(q, "coat"):
		n := len(s.Catalog.Search("coat"))
		if n == 0 {
			return s.bot("There are no lab coats listed right now. Check back soon, seniors post them at the end of every semester!")
		}
		return s.bot(fmt.Sprintf("I found %s available! There are white coats for chemistry labs and blue ones for workshop classes. Would you like me to show you the listings?",
			plural(n, "lab coat", "lab coats")))
	case strings.Contains(q, "drafting") || strings.Contains(q, "drafter") || strings.Contains(q, "engineering graphics"):
		n := len(s.Catalog.Search("drafting"))
		return s.bot(fmt.Sprintf("We have %s available from seniors who completed Engineering Graphics last semester. Would you like to see them?",
			plural(n, "drafting kit", "drafting kits")))
	case strings.Contains(q, "textbook") || strings.Contains(q, "book"):
		n := len(s.Catalog.Search("textbook"))
		return s.bot(fmt.Sprintf("There are %s available. Could you specify which subject you're looking for?",
			plural(n, "textbook", "textbooks")))
	case strings.Contains(q, "blockchain"):
		return s.bot("UniMart uses blockchain technology to securely record all transactions, ensuring transparency and trust between buyers and sellers. Each transaction gets a unique identifier on our blockchain!")
	default:
		return s.bot("I'd be happy to help you find what you need! Could you tell me more about what specific item you're looking for?")
	}
}

func (s *ChatService) bot(text string) ChatMessage {
	return ChatMessage{ID: ulid.Make().String(), Text: text, Sender: SenderBot, At: s.Now()}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}
