package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"exam-companion-be/internal/constant"
	"exam-companion-be/internal/dto"
	"exam-companion-be/internal/entity"
	"exam-companion-be/internal/pkg/logger"
	"exam-companion-be/internal/repository/memory"
	"exam-companion-be/internal/repository/specification"
	"exam-companion-be/internal/repository/unitofwork"
	"exam-companion-be/pkg/llm"
	"exam-companion-be/pkg/prompt"
	"exam-companion-be/pkg/studyloop"

	"github.com/google/uuid"
)

const (
	sessionTitleMaxLen = 60

	// tutorReplyMaxTokens caps a tutor answer. Replies are meant to be
	// exam-length, not essays.
	tutorReplyMaxTokens = 1024
)

// IChatService defines the tutoring chat service interface
type IChatService interface {
	CreateSession(ctx context.Context, accessCodeId uuid.UUID, request *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	GetAllSessions(ctx context.Context, accessCodeId uuid.UUID) ([]*dto.GetAllSessionsResponse, error)
	GetChatHistory(ctx context.Context, accessCodeId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error)
	SendChat(ctx context.Context, accessCodeId uuid.UUID, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	UpdateSession(ctx context.Context, accessCodeId uuid.UUID, sessionId uuid.UUID, request *dto.UpdateSessionRequest) error
	ClearHistory(ctx context.Context, accessCodeId uuid.UUID, sessionId uuid.UUID) error
	DeleteSession(ctx context.Context, accessCodeId uuid.UUID, request *dto.DeleteSessionRequest) error
}

type chatService struct {
	uowFactory  unitofwork.RepositoryFactory
	llmProvider llm.LLMProvider
	loopStates  *memory.LoopStateRepository
	logger      logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	loopStates *memory.LoopStateRepository,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:  uowFactory,
		llmProvider: llmProvider,
		loopStates:  loopStates,
		logger:      log,
	}
}

// CreateSession opens a new tutoring session for a level and subject the
// access code permits.
func (cs *chatService) CreateSession(ctx context.Context, accessCodeId uuid.UUID, request *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	if !constant.IsValidLevel(request.Level) {
		return nil, fmt.Errorf("unknown level: %s", request.Level)
	}
	if !constant.IsValidSubject(request.Subject) {
		return nil, fmt.Errorf("unknown subject: %s", request.Subject)
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	code, err := uow.AccessCodeRepository().FindOne(ctx, specification.ByID{ID: accessCodeId})
	if err != nil {
		return nil, err
	}
	if code == nil || !code.IsActive() {
		return nil, fmt.Errorf("access code is no longer active")
	}
	if !levelAllowed(code.AllowedLevels, request.Level) {
		return nil, fmt.Errorf("level %s is not enabled for this school", request.Level)
	}

	chatSession := entity.ChatSession{
		Id:               uuid.New(),
		AccessCodeId:     accessCodeId,
		Title:            "New revision session",
		Level:            request.Level,
		Subject:          request.Subject,
		StudyLoopEnabled: request.StudyLoopEnabled,
		CreatedAt:        time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatSessionRepository().Create(ctx, &chatSession); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.CreateSessionResponse{Id: chatSession.Id}, nil
}

func (cs *chatService) GetAllSessions(ctx context.Context, accessCodeId uuid.UUID) ([]*dto.GetAllSessionsResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chatSessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.OwnedByAccessCode{AccessCodeID: accessCodeId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.GetAllSessionsResponse, 0, len(chatSessions))
	for _, s := range chatSessions {
		response = append(response, &dto.GetAllSessionsResponse{
			Id:               s.Id,
			Title:            s.Title,
			Level:            s.Level,
			Subject:          s.Subject,
			StudyLoopEnabled: s.StudyLoopEnabled,
			CreatedAt:        s.CreatedAt,
			UpdatedAt:        s.UpdatedAt,
		})
	}

	return response, nil
}

func (cs *chatService) GetChatHistory(ctx context.Context, accessCodeId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if _, err := cs.verifySession(ctx, uow, accessCodeId, sessionId); err != nil {
		return nil, err
	}

	chatMessages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	resp := make([]*dto.GetChatHistoryResponse, 0, len(chatMessages))
	for _, msg := range chatMessages {
		resp = append(resp, &dto.GetChatHistoryResponse{
			Id:        msg.Id,
			Role:      msg.Role,
			Chat:      msg.Text,
			CreatedAt: msg.CreatedAt,
		})
	}

	return resp, nil
}

// SendChat handles one student turn. The student message is committed before
// the model is called so a provider failure never loses what the student
// typed. While a follow-up is pending the turn is graded locally and the
// model is not called at all.
func (cs *chatService) SendChat(ctx context.Context, accessCodeId uuid.UUID, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chatSession, err := cs.verifySession(ctx, uow, accessCodeId, request.ChatSessionId)
	if err != nil {
		return nil, err
	}

	history, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: request.ChatSessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	studentMessage := entity.ChatMessage{
		Id:            uuid.New(),
		Role:          constant.ChatMessageRoleStudent,
		Text:          request.Chat,
		ChatSessionId: request.ChatSessionId,
		CreatedAt:     now,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().Create(ctx, &studentMessage); err != nil {
		return nil, err
	}

	if len(history) == 0 {
		chatSession.Title = makeSessionTitle(request.Chat)
		if err := uow.ChatSessionRepository().Update(ctx, chatSession); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	response := &dto.SendChatResponse{
		ChatSessionId:    chatSession.Id,
		ChatSessionTitle: chatSession.Title,
		Sent: &dto.SendChatResponseChat{
			Id:        studentMessage.Id,
			Chat:      studentMessage.Text,
			Role:      studentMessage.Role,
			CreatedAt: studentMessage.CreatedAt,
		},
	}

	// A pending follow-up intercepts the turn unless the student declared a
	// new question.
	if chatSession.StudyLoopEnabled {
		if state, ok := cs.loopStates.Get(chatSession.Id.String()); ok && state.Awaiting() {
			outcome := state.SubmitAnswer(request.Chat, studyloop.Intent(request.Intent))
			cs.loopStates.Save(chatSession.Id.String(), state)

			if outcome.Kind != studyloop.OutcomeNewQuestion {
				return cs.finishGradedTurn(ctx, chatSession, state, outcome, response)
			}
			// Declared new question: fall through to a normal tutoring turn.
		}
	}

	reply, err := cs.askTutor(ctx, chatSession, request.Chat, history)
	if err != nil {
		cs.logger.Error("chat", "llm request failed", map[string]interface{}{
			"chat_session_id": chatSession.Id.String(),
			"error":           err.Error(),
		})
		return nil, fmt.Errorf("tutor is unavailable right now: %w", err)
	}

	uow2 := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow2.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow2.Rollback()

	tutorMessage := entity.ChatMessage{
		Id:            uuid.New(),
		Role:          constant.ChatMessageRoleTutor,
		Text:          reply,
		ChatSessionId: chatSession.Id,
		CreatedAt:     time.Now(),
	}
	if err := uow2.ChatMessageRepository().Create(ctx, &tutorMessage); err != nil {
		return nil, err
	}
	response.Reply = &dto.SendChatResponseChat{
		Id:        tutorMessage.Id,
		Chat:      tutorMessage.Text,
		Role:      tutorMessage.Role,
		CreatedAt: tutorMessage.CreatedAt,
	}

	if chatSession.StudyLoopEnabled {
		fu := studyloop.MakeFollowUp(studyloop.Level(chatSession.Level), chatSession.Subject, request.Chat)

		followUpMessage := entity.ChatMessage{
			Id:            uuid.New(),
			Role:          constant.ChatMessageRoleTutor,
			Text:          fu.Question,
			ChatSessionId: chatSession.Id,
			CreatedAt:     time.Now().Add(1 * time.Second),
		}
		if err := uow2.ChatMessageRepository().Create(ctx, &followUpMessage); err != nil {
			return nil, err
		}

		state, ok := cs.loopStates.Get(chatSession.Id.String())
		if !ok {
			state = studyloop.NewState()
		}
		state.Arm(studyloop.Level(chatSession.Level), chatSession.Subject, request.Chat, fu)
		cs.loopStates.Save(chatSession.Id.String(), state)

		response.FollowUpQuestion = fu.Question
	}

	if err := uow2.Commit(); err != nil {
		return nil, err
	}

	return response, nil
}

// UpdateSession replaces the session settings. A pending follow-up belongs
// to the old settings, so the loop state is dropped.
func (cs *chatService) UpdateSession(ctx context.Context, accessCodeId uuid.UUID, sessionId uuid.UUID, request *dto.UpdateSessionRequest) error {
	if !constant.IsValidLevel(request.Level) {
		return fmt.Errorf("unknown level: %s", request.Level)
	}
	if !constant.IsValidSubject(request.Subject) {
		return fmt.Errorf("unknown subject: %s", request.Subject)
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chatSession, err := cs.verifySession(ctx, uow, accessCodeId, sessionId)
	if err != nil {
		return err
	}

	code, err := uow.AccessCodeRepository().FindOne(ctx, specification.ByID{ID: accessCodeId})
	if err != nil {
		return err
	}
	if code == nil || !levelAllowed(code.AllowedLevels, request.Level) {
		return fmt.Errorf("level %s is not enabled for this school", request.Level)
	}

	now := time.Now()
	chatSession.Level = request.Level
	chatSession.Subject = request.Subject
	chatSession.StudyLoopEnabled = request.StudyLoopEnabled
	chatSession.UpdatedAt = &now

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatSessionRepository().Update(ctx, chatSession); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	cs.loopStates.Delete(sessionId.String())
	return nil
}

// ClearHistory empties the transcript but keeps the session and its settings.
func (cs *chatService) ClearHistory(ctx context.Context, accessCodeId uuid.UUID, sessionId uuid.UUID) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chatSession, err := cs.verifySession(ctx, uow, accessCodeId, sessionId)
	if err != nil {
		return err
	}

	now := time.Now()
	chatSession.Title = "New revision session"
	chatSession.UpdatedAt = &now

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Update(ctx, chatSession); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	cs.loopStates.Delete(sessionId.String())
	return nil
}

func (cs *chatService) DeleteSession(ctx context.Context, accessCodeId uuid.UUID, request *dto.DeleteSessionRequest) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if _, err := cs.verifySession(ctx, uow, accessCodeId, request.ChatSessionId); err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, request.ChatSessionId); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, request.ChatSessionId); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	cs.loopStates.Delete(request.ChatSessionId.String())
	return nil
}

// finishGradedTurn persists the locally graded feedback as a tutor message
// and assembles the study loop portion of the response.
func (cs *chatService) finishGradedTurn(
	ctx context.Context,
	chatSession *entity.ChatSession,
	state *studyloop.State,
	outcome studyloop.Outcome,
	response *dto.SendChatResponse,
) (*dto.SendChatResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	feedbackMessage := entity.ChatMessage{
		Id:            uuid.New(),
		Role:          constant.ChatMessageRoleTutor,
		Text:          outcome.Feedback,
		ChatSessionId: chatSession.Id,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &feedbackMessage); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	response.Reply = &dto.SendChatResponseChat{
		Id:        feedbackMessage.Id,
		Chat:      feedbackMessage.Text,
		Role:      feedbackMessage.Role,
		CreatedAt: feedbackMessage.CreatedAt,
	}

	result := &dto.StudyLoopResultDTO{
		RetriesRemaining: state.RetriesRemaining,
		OutlineHints:     outcome.OutlineHints,
	}
	if outcome.Score != nil {
		result.Verdict = string(outcome.Score.Verdict)
		result.Coverage = outcome.Score.Coverage
	} else {
		result.Verdict = string(studyloop.VerdictNotGraded)
	}
	response.StudyLoop = result

	return response, nil
}

// askTutor builds the tutoring prompts and calls the model.
func (cs *chatService) askTutor(ctx context.Context, chatSession *entity.ChatSession, question string, history []*entity.ChatMessage) (string, error) {
	builder := prompt.NewTutorBuilder(
		chatSession.Level,
		chatSession.Subject,
		chatSession.StudyLoopEnabled,
		question,
		history,
	)

	messages := []llm.Message{
		{Role: "system", Content: builder.BuildSystem()},
		{Role: "user", Content: builder.BuildUser()},
	}

	return cs.llmProvider.Chat(ctx, messages,
		llm.WithTemperature(0.7),
		llm.WithMaxTokens(tutorReplyMaxTokens),
	)
}

func (cs *chatService) verifySession(ctx context.Context, uow unitofwork.UnitOfWork, accessCodeId, sessionId uuid.UUID) (*entity.ChatSession, error) {
	chatSession, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.OwnedByAccessCode{AccessCodeID: accessCodeId},
	)
	if err != nil {
		return nil, err
	}
	if chatSession == nil {
		return nil, fmt.Errorf("session not found or access denied")
	}
	return chatSession, nil
}

func levelAllowed(allowedCSV, level string) bool {
	for _, l := range strings.Split(allowedCSV, ",") {
		if strings.TrimSpace(l) == level {
			return true
		}
	}
	return false
}

func makeSessionTitle(question string) string {
	title := strings.TrimSpace(question)
	if runes := []rune(title); len(runes) > sessionTitleMaxLen {
		title = string(runes[:sessionTitleMaxLen]) + "..."
	}
	return title
}
