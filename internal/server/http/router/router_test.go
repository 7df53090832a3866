package router

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/require"

	"github.com/polkiloo/membersonly/internal/app"
	"github.com/polkiloo/membersonly/internal/config"
	pkgAuth "github.com/polkiloo/membersonly/internal/pkg/auth"
	"github.com/polkiloo/membersonly/internal/server/http/handlers"
	"github.com/polkiloo/membersonly/internal/server/http/middleware"
	testhelpers "github.com/polkiloo/membersonly/internal/test"
	"github.com/polkiloo/membersonly/internal/usecase"
)

type board struct {
	engine *gin.Engine
	users  *testhelpers.UserRepositoryStub
	store  *testhelpers.SessionStoreStub
}

func newBoard(t *testing.T) *board {
	t.Helper()
	users := testhelpers.NewUserRepositoryStub()
	messages := testhelpers.NewMessageRepositoryStub(users)
	hasher := &testhelpers.HasherStub{}
	store := testhelpers.NewSessionStoreStub()
	gate := pkgAuth.NewGate()
	validator := usecase.NewValidator()

	sessions := usecase.NewSessionUseCase(store, users, pkgAuth.NewHMACSigner("router-secret"), time.Hour)
	facade := app.NewMembersFacade(
		usecase.NewAuthUseCase(users, hasher, pkgAuth.NewLocalStrategy(users, hasher), sessions, validator),
		sessions,
		usecase.NewMessageUseCase(messages, gate, validator),
		usecase.NewMembershipUseCase(users, gate),
		nil,
	)

	cfg := &config.Config{SessionTTL: time.Hour, CORSAllowedOrigins: []string{"https://board.example"}}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return &board{engine: Setup(facade, cfg, logger), users: users, store: store}
}

func (b *board) signUp(t *testing.T, first, email string) {
	t.Helper()
	apitest.New().
		Handler(b.engine).
		Post("/sign-up").
		FormData("first_name", first).
		FormData("last_name", "Tester").
		FormData("email", email).
		FormData("password", "password1").
		Expect(t).
		Status(http.StatusSeeOther).
		Header("Location", "/").
		CookieNotPresent(middleware.SessionCookieName).
		End()
}

func (b *board) logIn(t *testing.T, email string) string {
	t.Helper()
	result := apitest.New().
		Handler(b.engine).
		Post("/log-in").
		FormData("username", email).
		FormData("password", "password1").
		Expect(t).
		Status(http.StatusSeeOther).
		Header("Location", "/").
		CookiePresent(middleware.SessionCookieName).
		End()

	for _, c := range result.Response.Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c.Value
		}
	}
	t.Fatal("session cookie missing")
	return ""
}

func (b *board) userID(t *testing.T, email string) string {
	t.Helper()
	user, err := b.users.GetByLogin(t.Context(), email)
	require.NoError(t, err)
	return user.ID.String()
}

func TestBoardFlowMasksAuthorsUntilJoin(t *testing.T) {
	b := newBoard(t)
	b.signUp(t, "Ada", "ada@example.com")
	token := b.logIn(t, "ada@example.com")

	apitest.New().
		Handler(b.engine).
		Post("/messages").
		Cookie(middleware.SessionCookieName, token).
		FormData("title", "Hello").
		FormData("text", "first post").
		Expect(t).
		Status(http.StatusSeeOther).
		Header("Location", "/").
		End()

	apitest.New().
		Handler(b.engine).
		Get("/").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.NotPresent("$.viewer.id")).
		Assert(jsonpath.Len("$.messages", 1)).
		Assert(jsonpath.Equal("$.messages[0].title", "Hello")).
		Assert(jsonpath.NotPresent("$.messages[0].author")).
		End()

	apitest.New().
		Handler(b.engine).
		Get("/").
		Cookie(middleware.SessionCookieName, token).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.viewer.member", false)).
		Assert(jsonpath.Equal("$.viewer.display_name", "Ada Tester")).
		Assert(jsonpath.NotPresent("$.messages[0].author")).
		End()

	apitest.New().
		Handler(b.engine).
		Post("/join/"+b.userID(t, "ada@example.com")).
		Cookie(middleware.SessionCookieName, token).
		Expect(t).
		Status(http.StatusSeeOther).
		End()

	// the same session sees the new membership without logging in again
	apitest.New().
		Handler(b.engine).
		Get("/").
		Cookie(middleware.SessionCookieName, token).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.viewer.member", true)).
		Assert(jsonpath.Equal("$.messages[0].author.first_name", "Ada")).
		End()
}

func TestAnonymousCannotPostOrJoin(t *testing.T) {
	b := newBoard(t)
	b.signUp(t, "Ada", "ada@example.com")

	apitest.New().
		Handler(b.engine).
		Post("/messages").
		FormData("title", "Hello").
		FormData("text", "anonymous").
		Expect(t).
		Status(http.StatusUnauthorized).
		End()

	apitest.New().
		Handler(b.engine).
		Post("/join/"+b.userID(t, "ada@example.com")).
		Expect(t).
		Status(http.StatusUnauthorized).
		End()

	apitest.New().
		Handler(b.engine).
		Get("/").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$.messages", 0)).
		End()
}

func TestJoinOtherAccountForbidden(t *testing.T) {
	b := newBoard(t)
	b.signUp(t, "Ada", "ada@example.com")
	b.signUp(t, "Grace", "grace@example.com")
	token := b.logIn(t, "ada@example.com")

	apitest.New().
		Handler(b.engine).
		Post("/join/"+b.userID(t, "grace@example.com")).
		Cookie(middleware.SessionCookieName, token).
		Expect(t).
		Status(http.StatusForbidden).
		End()

	apitest.New().
		Handler(b.engine).
		Post("/join/not-a-uuid").
		Cookie(middleware.SessionCookieName, token).
		Expect(t).
		Status(http.StatusBadRequest).
		End()

	grace, err := b.users.GetByLogin(t.Context(), "grace@example.com")
	require.NoError(t, err)
	require.False(t, grace.Member)
}

func TestLogInFailureIsGeneric(t *testing.T) {
	b := newBoard(t)
	b.signUp(t, "Ada", "ada@example.com")

	for _, creds := range [][2]string{{"ada@example.com", "wrong-password"}, {"nobody@example.com", "password1"}} {
		apitest.New().
			Handler(b.engine).
			Post("/log-in").
			FormData("username", creds[0]).
			FormData("password", creds[1]).
			Expect(t).
			Status(http.StatusSeeOther).
			Header("Location", handlers.FailurePath).
			CookieNotPresent(middleware.SessionCookieName).
			End()
	}

	apitest.New().
		Handler(b.engine).
		Get(handlers.FailurePath).
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal("$.error", "invalid credentials")).
		End()
}

func TestSignUpValidationAndDuplicate(t *testing.T) {
	b := newBoard(t)

	apitest.New().
		Handler(b.engine).
		Post("/sign-up").
		JSON(`{"first_name":"A","last_name":"Tester","email":"not-an-email","password":"short"}`).
		Expect(t).
		Status(http.StatusUnprocessableEntity).
		Assert(jsonpath.Equal("$.draft.first_name", "A")).
		Assert(jsonpath.NotPresent("$.draft.password")).
		Assert(jsonpath.Len("$.errors", 3)).
		End()
	require.Equal(t, 0, b.users.Count())

	b.signUp(t, "Ada", "ada@example.com")

	apitest.New().
		Handler(b.engine).
		Post("/sign-up").
		FormData("first_name", "Ada").
		FormData("last_name", "Again").
		FormData("email", "ADA@example.com").
		FormData("password", "password1").
		Expect(t).
		Status(http.StatusInternalServerError).
		Assert(jsonpath.Equal("$.error", "internal error")).
		End()
	require.Equal(t, 1, b.users.Count())
}

func TestMessageValidationEchoesDraftAndBoard(t *testing.T) {
	b := newBoard(t)
	b.signUp(t, "Ada", "ada@example.com")
	token := b.logIn(t, "ada@example.com")

	apitest.New().
		Handler(b.engine).
		Post("/messages").
		Cookie(middleware.SessionCookieName, token).
		JSON(`{"title":"ok","text":"kept"}`).
		Expect(t).
		Status(http.StatusSeeOther).
		End()

	apitest.New().
		Handler(b.engine).
		Post("/messages").
		Cookie(middleware.SessionCookieName, token).
		JSON(`{"title":"   ","text":"` + strings.Repeat("x", 101) + `"}`).
		Expect(t).
		Status(http.StatusUnprocessableEntity).
		Assert(jsonpath.Equal("$.draft.title", "")).
		Assert(jsonpath.Len("$.errors", 2)).
		Assert(jsonpath.Len("$.messages", 1)).
		End()
}

func TestLogOutEndsSession(t *testing.T) {
	b := newBoard(t)
	b.signUp(t, "Ada", "ada@example.com")
	token := b.logIn(t, "ada@example.com")
	require.Equal(t, 1, b.store.Len())

	apitest.New().
		Handler(b.engine).
		Get("/log-out").
		Cookie(middleware.SessionCookieName, token).
		Expect(t).
		Status(http.StatusSeeOther).
		Header("Location", "/").
		End()
	require.Equal(t, 0, b.store.Len())

	// a stale cookie is treated as anonymous and cleared
	result := apitest.New().
		Handler(b.engine).
		Get("/").
		Cookie(middleware.SessionCookieName, token).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.NotPresent("$.viewer.id")).
		End()
	cookies := result.Response.Cookies()
	require.Len(t, cookies, 1)
	require.Less(t, cookies[0].MaxAge, 0)

	apitest.New().
		Handler(b.engine).
		Post("/log-out").
		Expect(t).
		Status(http.StatusSeeOther).
		End()
}

func TestTamperedTokenIsAnonymous(t *testing.T) {
	b := newBoard(t)
	b.signUp(t, "Ada", "ada@example.com")
	token := b.logIn(t, "ada@example.com")

	forged := token[:strings.LastIndex(token, ".")+1] + "forged"
	apitest.New().
		Handler(b.engine).
		Post("/messages").
		Header("Authorization", "Bearer "+forged).
		JSON(`{"title":"t","text":"x"}`).
		Expect(t).
		Status(http.StatusUnauthorized).
		End()
}

func TestSignUpFormAndHealth(t *testing.T) {
	b := newBoard(t)

	apitest.New().
		Handler(b.engine).
		Get("/sign-up").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$.fields", 4)).
		Assert(jsonpath.Equal("$.fields[3].name", "password")).
		End()

	apitest.New().
		Handler(b.engine).
		Get("/healthz").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.status", "ok")).
		End()
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	b := newBoard(t)

	apitest.New().
		Handler(b.engine).
		Get("/").
		Header("Origin", "https://board.example").
		Expect(t).
		Status(http.StatusOK).
		Header("Access-Control-Allow-Origin", "https://board.example").
		Header("Access-Control-Allow-Credentials", "true").
		End()

	apitest.New().
		Handler(b.engine).
		Get("/").
		Header("Origin", "https://evil.example").
		Expect(t).
		Status(http.StatusForbidden).
		End()
}

var _ handlers.MembersFacade = (*app.MembersFacade)(nil)
