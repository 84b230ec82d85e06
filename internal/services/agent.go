package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"slidedeck-backend/internal/models"
	"slidedeck-backend/internal/repository"
)

var deckExtension = regexp.MustCompile(`(?i)\.(pptx|pdf)$`)

// AgentGateway prepares generation requests for the external GenSpark agent
// and applies its out-of-band results. It never calls the agent itself: the
// gap between "request prepared" and "result applied" is durable, and the
// result arrives through update-agent-info or the callback route.
type AgentGateway struct {
	presRepo  *repository.PresentationRepo
	lifecycle *LifecycleService
	pubsub    *redis.Client
}

func NewAgentGateway(presRepo *repository.PresentationRepo, lifecycle *LifecycleService, pubsubClient *redis.Client) *AgentGateway {
	return &AgentGateway{
		presRepo:  presRepo,
		lifecycle: lifecycle,
		pubsub:    pubsubClient,
	}
}

// PrepareGeneration moves the presentation into processing and builds the
// agent request payload. The caller forwards it to the agent environment.
func (g *AgentGateway) PrepareGeneration(ctx context.Context, presentationID uuid.UUID, fileName string, settings *models.PresentationSettings) (*models.AgentRequest, error) {
	if fileName == "" {
		return nil, &ValidationError{Fields: map[string]string{"file_name": "Missing file name"}}
	}

	if _, err := g.lifecycle.Get(ctx, presentationID); err != nil {
		return nil, err
	}
	if _, err := g.presRepo.UpdateStatus(ctx, presentationID, models.StatusProcessing); err != nil {
		return nil, err
	}

	return BuildAgentRequest(fileName, settings), nil
}

// BuildAgentRequest assembles the task name, query, and instruction block
// for a deck conversion. Pure; no store or network access.
func BuildAgentRequest(fileName string, settings *models.PresentationSettings) *models.AgentRequest {
	sourceKind := "PowerPoint"
	if strings.HasSuffix(strings.ToLower(fileName), ".pdf") {
		sourceKind = "PDF"
	}

	var b strings.Builder
	b.WriteString("You are a professional presentation designer and LMS content creator.\n\n")
	fmt.Fprintf(&b, "Task: Convert the uploaded %s presentation into a modern, professional slide deck suitable for an LMS (Learning Management System).\n\n", sourceKind)
	b.WriteString(`Requirements:
1. Maintain the original content and structure
2. Apply a clean, modern design with consistent branding
3. Use professional color schemes and typography
4. Make each slide self-contained as a lesson
5. Add clear titles and organize content logically
6. Ensure readability and visual hierarchy
7. Use bullet points, images, and diagrams where appropriate
`)
	if settings != nil && settings.EnableQuizzes {
		b.WriteString("8. Prepare quiz questions based on content (user will configure placement later)\n")
	}
	if settings != nil && settings.EnableNarration {
		b.WriteString("9. Ensure content is suitable for audio narration\n")
	}
	b.WriteString("\nOutput: A complete presentation with all slides properly formatted and ready for LMS use.")

	query := fmt.Sprintf(
		"Create a professional LMS presentation from %q. Transform the content into modern, clean slides with consistent design theme and make each slide its own lesson. Apply professional branding and ensure the presentation is ready for interactive learning.",
		fileName,
	)

	return &models.AgentRequest{
		TaskType:     "slides",
		TaskName:     deckExtension.ReplaceAllString(fileName, ""),
		Query:        query,
		Instructions: b.String(),
	}
}

// ApplyResult finalizes a presentation with the agent's artifact. Idempotent:
// re-applying the same result rewrites the same fields.
func (g *AgentGateway) ApplyResult(ctx context.Context, presentationID uuid.UUID, taskID, projectURL string) error {
	if err := g.lifecycle.SetAgentInfo(ctx, presentationID, taskID, projectURL); err != nil {
		return err
	}
	g.publishStatus(ctx, models.StatusEvent{
		PresentationID: presentationID,
		Status:         models.StatusCompleted,
		ProjectURL:     projectURL,
	})
	return nil
}

// HandleCallback resolves an inbound agent callback by task id and applies
// the reported status and artifact URL.
func (g *AgentGateway) HandleCallback(ctx context.Context, taskID, status, projectURL string) error {
	if taskID == "" {
		return &ValidationError{Fields: map[string]string{"task_id": "Missing task_id"}}
	}

	p, err := g.presRepo.GetByTaskID(ctx, taskID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &NotFoundError{Message: "No presentation references task " + taskID}
		}
		return err
	}

	if status == "" {
		status = models.StatusCompleted
	}
	if _, err := g.presRepo.UpdateAgentInfo(ctx, p.ID, taskID, projectURL, status); err != nil {
		return err
	}

	g.publishStatus(ctx, models.StatusEvent{
		PresentationID: p.ID,
		Status:         status,
		ProjectURL:     projectURL,
	})
	return nil
}

func (g *AgentGateway) publishStatus(ctx context.Context, event models.StatusEvent) {
	if g.pubsub == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	channel := "presentation_updates:" + event.PresentationID.String()
	if err := g.pubsub.Publish(ctx, channel, payload).Err(); err != nil {
		log.Printf("Failed to publish status event for %s: %v", event.PresentationID, err)
	}
}
