package service

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"exam-companion-be/internal/constant"
	"exam-companion-be/internal/dto"
	"exam-companion-be/internal/entity"
	"exam-companion-be/internal/repository/memory"
	"exam-companion-be/pkg/studyloop"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatFixture struct {
	store      *fakeStore
	llm        *fakeLLM
	loopStates *memory.LoopStateRepository
	service    IChatService
	codeId     uuid.UUID
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()

	store := newFakeStore()
	codeId := uuid.New()
	store.codes[codeId] = &entity.AccessCode{
		Id:            codeId,
		Code:          "KIUL-TEST-0001",
		SchoolName:    "Test School",
		AllowedLevels: "CSEE (Form IV), ACSEE (Form VI)",
		Status:        entity.AccessCodeStatusActive,
		CreatedAt:     time.Now(),
	}

	llmFake := &fakeLLM{reply: "Osmosis is the movement of water across a semi-permeable membrane."}
	loopStates := memory.NewLoopStateRepository()
	svc := NewChatService(&fakeFactory{store: store}, llmFake, loopStates, nopLogger{})

	return &chatFixture{
		store:      store,
		llm:        llmFake,
		loopStates: loopStates,
		service:    svc,
		codeId:     codeId,
	}
}

func (f *chatFixture) createSession(t *testing.T, studyLoop bool) uuid.UUID {
	t.Helper()
	res, err := f.service.CreateSession(context.Background(), f.codeId, &dto.CreateSessionRequest{
		Level:            "CSEE (Form IV)",
		Subject:          "Biology",
		StudyLoopEnabled: studyLoop,
	})
	require.NoError(t, err)
	return res.Id
}

func TestCreateSessionRejectsUnknownLevel(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.service.CreateSession(context.Background(), f.codeId, &dto.CreateSessionRequest{
		Level:   "IGCSE",
		Subject: "Biology",
	})
	assert.Error(t, err)
}

func TestCreateSessionRejectsLevelOutsideCode(t *testing.T) {
	f := newChatFixture(t)
	f.store.codes[f.codeId].AllowedLevels = "CSEE (Form IV)"

	_, err := f.service.CreateSession(context.Background(), f.codeId, &dto.CreateSessionRequest{
		Level:   "ACSEE (Form VI)",
		Subject: "Biology",
	})
	assert.Error(t, err)
}

func TestCreateSessionRejectsDisabledCode(t *testing.T) {
	f := newChatFixture(t)
	f.store.codes[f.codeId].Status = entity.AccessCodeStatusDisabled

	_, err := f.service.CreateSession(context.Background(), f.codeId, &dto.CreateSessionRequest{
		Level:   "CSEE (Form IV)",
		Subject: "Biology",
	})
	assert.Error(t, err)
}

func TestSendChatPlainTurn(t *testing.T) {
	f := newChatFixture(t)
	sessionId := f.createSession(t, false)

	res, err := f.service.SendChat(context.Background(), f.codeId, &dto.SendChatRequest{
		ChatSessionId: sessionId,
		Chat:          "What is osmosis?",
	})
	require.NoError(t, err)

	assert.Equal(t, constant.ChatMessageRoleStudent, res.Sent.Role)
	require.NotNil(t, res.Reply)
	assert.Equal(t, constant.ChatMessageRoleTutor, res.Reply.Role)
	assert.Empty(t, res.FollowUpQuestion)
	assert.Nil(t, res.StudyLoop)
	assert.Equal(t, 1, f.llm.calls)
	assert.Len(t, f.store.messages, 2)
	assert.Equal(t, 0.7, f.llm.lastOpts.Temperature)
	assert.Equal(t, tutorReplyMaxTokens, f.llm.lastOpts.MaxTokens)
}

func TestSendChatSetsTitleFromFirstQuestion(t *testing.T) {
	f := newChatFixture(t)
	sessionId := f.createSession(t, false)

	res, err := f.service.SendChat(context.Background(), f.codeId, &dto.SendChatRequest{
		ChatSessionId: sessionId,
		Chat:          "What is osmosis?",
	})
	require.NoError(t, err)
	assert.Equal(t, "What is osmosis?", res.ChatSessionTitle)
	assert.Equal(t, "What is osmosis?", f.store.sessions[sessionId].Title)

	// A second turn must not rewrite the title.
	_, err = f.service.SendChat(context.Background(), f.codeId, &dto.SendChatRequest{
		ChatSessionId: sessionId,
		Chat:          "Explain diffusion",
	})
	require.NoError(t, err)
	assert.Equal(t, "What is osmosis?", f.store.sessions[sessionId].Title)
}

func TestSendChatTruncatesTitleOnRuneBoundary(t *testing.T) {
	f := newChatFixture(t)
	sessionId := f.createSession(t, false)

	// 70 runes of multi-byte text; a byte-indexed cut would split a rune.
	question := strings.Repeat("تعريف ا", 10)
	require.Equal(t, 70, utf8.RuneCountInString(question))

	res, err := f.service.SendChat(context.Background(), f.codeId, &dto.SendChatRequest{
		ChatSessionId: sessionId,
		Chat:          question,
	})
	require.NoError(t, err)

	title := res.ChatSessionTitle
	assert.True(t, utf8.ValidString(title))
	assert.Equal(t, 63, utf8.RuneCountInString(title)) // 60 + "..."
	assert.True(t, strings.HasSuffix(title, "..."))
}

func TestSendChatStudyLoopArmsFollowUp(t *testing.T) {
	f := newChatFixture(t)
	sessionId := f.createSession(t, true)

	res, err := f.service.SendChat(context.Background(), f.codeId, &dto.SendChatRequest{
		ChatSessionId: sessionId,
		Chat:          "What is osmosis?",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.FollowUpQuestion)
	// Student question, tutor answer, follow-up question.
	assert.Len(t, f.store.messages, 3)

	state, ok := f.loopStates.Get(sessionId.String())
	require.True(t, ok)
	assert.True(t, state.Awaiting())
	assert.Equal(t, studyloop.InitialRetries, state.RetriesRemaining)
}

func TestSendChatLLMFailureKeepsStudentMessageOnly(t *testing.T) {
	f := newChatFixture(t)
	sessionId := f.createSession(t, true)
	f.llm.fail = true

	_, err := f.service.SendChat(context.Background(), f.codeId, &dto.SendChatRequest{
		ChatSessionId: sessionId,
		Chat:          "What is osmosis?",
	})
	require.Error(t, err)

	// The student message survives, no tutor message was written, and the
	// loop was never armed.
	assert.Len(t, f.store.messages, 1)
	assert.Equal(t, constant.ChatMessageRoleStudent, f.store.messages[0].Role)
	_, ok := f.loopStates.Get(sessionId.String())
	assert.False(t, ok)
}

func TestSendChatGradesPendingFollowUpWithoutLLM(t *testing.T) {
	f := newChatFixture(t)
	sessionId := f.createSession(t, true)

	_, err := f.service.SendChat(context.Background(), f.codeId, &dto.SendChatRequest{
		ChatSessionId: sessionId,
		Chat:          "What is osmosis?",
	})
	require.NoError(t, err)
	require.Equal(t, 1, f.llm.calls)

	res, err := f.service.SendChat(context.Background(), f.codeId, &dto.SendChatRequest{
		ChatSessionId: sessionId,
		Chat:          "Water moves across a semi-permeable membrane from high to low concentration, for example in plant root cells, because of the concentration gradient.",
		Intent:        "answer",
	})
	require.NoError(t, err)

	// Graded locally: no extra model call.
	assert.Equal(t, 1, f.llm.calls)
	require.NotNil(t, res.StudyLoop)
	assert.Equal(t, string(studyloop.VerdictCorrect), res.StudyLoop.Verdict)

	state, ok := f.loopStates.Get(sessionId.String())
	require.True(t, ok)
	assert.False(t, state.Awaiting())
}

func TestSendChatDeclaredQuestionBypassesGrading(t *testing.T) {
	f := newChatFixture(t)
	sessionId := f.createSession(t, true)

	_, err := f.service.SendChat(context.Background(), f.codeId, &dto.SendChatRequest{
		ChatSessionId: sessionId,
		Chat:          "What is osmosis?",
	})
	require.NoError(t, err)

	res, err := f.service.SendChat(context.Background(), f.codeId, &dto.SendChatRequest{
		ChatSessionId: sessionId,
		Chat:          "What is diffusion?",
		Intent:        "question",
	})
	require.NoError(t, err)

	// The declared question went to the model as a fresh tutoring turn.
	assert.Equal(t, 2, f.llm.calls)
	assert.Nil(t, res.StudyLoop)
	assert.NotEmpty(t, res.FollowUpQuestion)
}

func TestSendChatQuestionLikeReplyNotGraded(t *testing.T) {
	f := newChatFixture(t)
	sessionId := f.createSession(t, true)

	_, err := f.service.SendChat(context.Background(), f.codeId, &dto.SendChatRequest{
		ChatSessionId: sessionId,
		Chat:          "What is osmosis?",
	})
	require.NoError(t, err)

	res, err := f.service.SendChat(context.Background(), f.codeId, &dto.SendChatRequest{
		ChatSessionId: sessionId,
		Chat:          "What do you mean by membrane?",
	})
	require.NoError(t, err)

	require.NotNil(t, res.StudyLoop)
	assert.Equal(t, string(studyloop.VerdictNotGraded), res.StudyLoop.Verdict)

	// Still awaiting, no retry consumed, no model call spent.
	state, ok := f.loopStates.Get(sessionId.String())
	require.True(t, ok)
	assert.True(t, state.Awaiting())
	assert.Equal(t, studyloop.InitialRetries, state.RetriesRemaining)
	assert.Equal(t, 1, f.llm.calls)
}

func TestSendChatWrongAnswerTwiceEmitsOutline(t *testing.T) {
	f := newChatFixture(t)
	sessionId := f.createSession(t, true)

	_, err := f.service.SendChat(context.Background(), f.codeId, &dto.SendChatRequest{
		ChatSessionId: sessionId,
		Chat:          "What is osmosis?",
	})
	require.NoError(t, err)

	first, err := f.service.SendChat(context.Background(), f.codeId, &dto.SendChatRequest{
		ChatSessionId: sessionId,
		Chat:          "no idea",
		Intent:        "answer",
	})
	require.NoError(t, err)
	require.NotNil(t, first.StudyLoop)
	assert.Equal(t, 0, first.StudyLoop.RetriesRemaining)
	assert.Empty(t, first.StudyLoop.OutlineHints)

	second, err := f.service.SendChat(context.Background(), f.codeId, &dto.SendChatRequest{
		ChatSessionId: sessionId,
		Chat:          "still no idea",
		Intent:        "answer",
	})
	require.NoError(t, err)
	require.NotNil(t, second.StudyLoop)
	assert.NotEmpty(t, second.StudyLoop.OutlineHints)

	state, ok := f.loopStates.Get(sessionId.String())
	require.True(t, ok)
	assert.False(t, state.Awaiting())
}

func TestSendChatRejectsForeignSession(t *testing.T) {
	f := newChatFixture(t)
	sessionId := f.createSession(t, false)

	_, err := f.service.SendChat(context.Background(), uuid.New(), &dto.SendChatRequest{
		ChatSessionId: sessionId,
		Chat:          "hello",
	})
	assert.Error(t, err)
}

func TestDeleteSessionRemovesMessagesAndLoopState(t *testing.T) {
	f := newChatFixture(t)
	sessionId := f.createSession(t, true)

	_, err := f.service.SendChat(context.Background(), f.codeId, &dto.SendChatRequest{
		ChatSessionId: sessionId,
		Chat:          "What is osmosis?",
	})
	require.NoError(t, err)

	err = f.service.DeleteSession(context.Background(), f.codeId, &dto.DeleteSessionRequest{
		ChatSessionId: sessionId,
	})
	require.NoError(t, err)

	assert.Empty(t, f.store.messages)
	_, ok := f.loopStates.Get(sessionId.String())
	assert.False(t, ok)
}

func TestGetChatHistoryOrdersOldestFirst(t *testing.T) {
	f := newChatFixture(t)
	sessionId := f.createSession(t, false)

	_, err := f.service.SendChat(context.Background(), f.codeId, &dto.SendChatRequest{
		ChatSessionId: sessionId,
		Chat:          "What is osmosis?",
	})
	require.NoError(t, err)

	history, err := f.service.GetChatHistory(context.Background(), f.codeId, sessionId)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, constant.ChatMessageRoleStudent, history[0].Role)
	assert.Equal(t, constant.ChatMessageRoleTutor, history[1].Role)
}

func TestUpdateSessionReplacesSettingsAndDropsLoopState(t *testing.T) {
	f := newChatFixture(t)
	sessionId := f.createSession(t, true)

	_, err := f.service.SendChat(context.Background(), f.codeId, &dto.SendChatRequest{
		ChatSessionId: sessionId,
		Chat:          "What is osmosis?",
	})
	require.NoError(t, err)
	_, ok := f.loopStates.Get(sessionId.String())
	require.True(t, ok)

	err = f.service.UpdateSession(context.Background(), f.codeId, sessionId, &dto.UpdateSessionRequest{
		Level:            "ACSEE (Form VI)",
		Subject:          "Chemistry",
		StudyLoopEnabled: false,
	})
	require.NoError(t, err)

	updated := f.store.sessions[sessionId]
	assert.Equal(t, "ACSEE (Form VI)", updated.Level)
	assert.Equal(t, "Chemistry", updated.Subject)
	assert.False(t, updated.StudyLoopEnabled)

	_, ok = f.loopStates.Get(sessionId.String())
	assert.False(t, ok)
}

func TestUpdateSessionRejectsLevelOutsideCode(t *testing.T) {
	f := newChatFixture(t)
	sessionId := f.createSession(t, false)
	f.store.codes[f.codeId].AllowedLevels = "CSEE (Form IV)"

	err := f.service.UpdateSession(context.Background(), f.codeId, sessionId, &dto.UpdateSessionRequest{
		Level:   "ACSEE (Form VI)",
		Subject: "Biology",
	})
	assert.Error(t, err)
}

func TestClearHistoryKeepsSession(t *testing.T) {
	f := newChatFixture(t)
	sessionId := f.createSession(t, true)

	_, err := f.service.SendChat(context.Background(), f.codeId, &dto.SendChatRequest{
		ChatSessionId: sessionId,
		Chat:          "What is osmosis?",
	})
	require.NoError(t, err)

	err = f.service.ClearHistory(context.Background(), f.codeId, sessionId)
	require.NoError(t, err)

	history, err := f.service.GetChatHistory(context.Background(), f.codeId, sessionId)
	require.NoError(t, err)
	assert.Empty(t, history)

	kept := f.store.sessions[sessionId]
	require.NotNil(t, kept)
	assert.Equal(t, "New revision session", kept.Title)

	_, ok := f.loopStates.Get(sessionId.String())
	assert.False(t, ok)
}
