package platforms

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/aiprobe-cli/internal/adapters/driver/fake"
	"github.com/bnema/aiprobe-cli/internal/domain"
	portmocks "github.com/bnema/aiprobe-cli/internal/ports/mocks"
)

func TestHandleLoginAlreadyLoggedIn(t *testing.T) {
	t.Parallel()

	page, _ := openPage(t)
	page.Set("#profile", fake.NewElement())
	deps, _ := testDeps()
	adapter := newChatGPT(testProfile("chatgpt"), page, deps).(*chatGPT)

	state, err := adapter.HandleLogin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.LoginStateLoggedIn, state)
	assert.Equal(t, []domain.LoginState{domain.LoginStateCheckingUI, domain.LoginStateLoggedIn}, adapter.loginTrail)
	assert.Zero(t, page.Reloads())
}

func TestHandleLoginInjectsCookieHeader(t *testing.T) {
	t.Parallel()

	page, bc := openPage(t)
	page.AfterReload = func(p *fake.Page) {
		p.Set("#profile", fake.NewElement())
	}

	deps, _ := testDeps()
	profile := testProfile("chatgpt")
	profile.Auth.Value = "__Secure-next-auth.session-token=abc; _cfuvid=xyz"
	adapter := newChatGPT(profile, page, deps).(*chatGPT)

	state, err := adapter.HandleLogin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.LoginStateLoggedIn, state)
	assert.Equal(t, []domain.LoginState{
		domain.LoginStateCheckingUI,
		domain.LoginStateInjectingCredentials,
		domain.LoginStateLoggedIn,
	}, adapter.loginTrail)

	cookies := bc.AddedCookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, "__Secure-next-auth.session-token", cookies[0].Name)
	assert.Equal(t, "abc", cookies[0].Value)
	assert.Equal(t, ".chatgpt.com", cookies[0].Domain)
	assert.Equal(t, 1, page.Reloads())
}

func TestHandleLoginAcceptsNetworkCorroboration(t *testing.T) {
	t.Parallel()

	page, _ := openPage(t)
	page.AfterReload = func(p *fake.Page) {
		p.Emit("https://chatgpt.com/backend-api/me", 200)
	}

	deps, _ := testDeps()
	profile := testProfile("chatgpt")
	profile.Auth.Value = "abc"
	profile.Auth.APIPattern = "/backend-api/me"
	adapter := newChatGPT(profile, page, deps)

	state, err := adapter.HandleLogin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.LoginStateLoggedIn, state)
}

func TestHandleLoginIgnoresFailedAPIResponses(t *testing.T) {
	t.Parallel()

	page, _ := openPage(t)
	page.AfterReload = func(p *fake.Page) {
		p.Emit("https://chatgpt.com/backend-api/me", 401)
	}

	deps, _ := testDeps()
	profile := testProfile("chatgpt")
	profile.Auth.Value = "abc"
	profile.Auth.APIPattern = "/backend-api/me"
	adapter := newChatGPT(profile, page, deps)

	state, err := adapter.HandleLogin(context.Background())
	require.ErrorIs(t, err, domain.ErrLoginFailed)
	assert.Equal(t, domain.LoginStateLoginFailed, state)
}

func TestHandleLoginWritesVersionedTokenFromSecretStore(t *testing.T) {
	t.Parallel()

	page, _ := openPage(t)
	var written map[string]string
	page.Eval = func(script string, arg any) (any, error) {
		if script == setLocalStorageScript {
			written = arg.(map[string]string)
			page.Set("#profile", fake.NewElement())
		}
		return nil, nil
	}

	secrets := portmocks.NewMockSecretStore(t)
	secrets.EXPECT().Get(mock.Anything, "aiprobe/deepseek/credential").Return("tok-1\n", nil).Once()

	deps, _ := testDeps()
	deps.Secrets = secrets
	profile := testProfile("deepseek")
	profile.Auth = domain.AuthDescriptor{
		Kind:       domain.AuthKindToken,
		SecretRef:  "aiprobe/deepseek/credential",
		StorageKey: "userToken",
	}
	adapter := newDeepSeek(profile, page, deps)

	state, err := adapter.HandleLogin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.LoginStateLoggedIn, state)
	assert.Equal(t, map[string]string{"userToken": `{"value":"tok-1","__version":"0"}`}, written)
}

func TestHandleLoginManualWaitSucceeds(t *testing.T) {
	t.Parallel()

	page, _ := openPage(t)
	page.Set("#profile", &fake.Element{Visibility: []bool{false, false, true}})

	deps, clock := testDeps()
	adapter := newChatGPT(testProfile("chatgpt"), page, deps).(*chatGPT)

	state, err := adapter.HandleLogin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.LoginStateLoggedIn, state)
	assert.Equal(t, []domain.LoginState{
		domain.LoginStateCheckingUI,
		domain.LoginStateAwaitingManualLogin,
		domain.LoginStateLoggedIn,
	}, adapter.loginTrail)
	assert.Equal(t, []time.Duration{loginPollInterval}, clock.Sleeps())
}

func TestHandleLoginManualWaitIsBounded(t *testing.T) {
	t.Parallel()

	page, _ := openPage(t)
	page.Set("#login", fake.NewElement())

	deps, clock := testDeps()
	profile := testProfile("chatgpt")
	profile.Selectors.LoginButton = "#login"
	adapter := newChatGPT(profile, page, deps).(*chatGPT)

	state, err := adapter.HandleLogin(context.Background())
	require.ErrorIs(t, err, domain.ErrLoginFailed)
	assert.Equal(t, domain.LoginStateLoginFailed, state)
	assert.Equal(t, domain.ErrorKindLoginFailure, domain.KindOf(err))
	assert.Len(t, clock.Sleeps(), 5)
	assert.Equal(t, testStart.Add(10*time.Second), clock.Now())
}

func TestHandleLoginFallsBackToManualWhenSecretMissing(t *testing.T) {
	t.Parallel()

	page, _ := openPage(t)
	page.Set("#profile", &fake.Element{Visibility: []bool{false, true}})

	secrets := portmocks.NewMockSecretStore(t)
	secrets.EXPECT().Get(mock.Anything, "aiprobe/gemini/credential").Return("", errors.New("not set")).Once()

	deps, _ := testDeps()
	deps.Secrets = secrets
	profile := testProfile("gemini")
	profile.Auth.SecretRef = "aiprobe/gemini/credential"
	adapter := newGemini(profile, page, deps).(*gemini)

	state, err := adapter.HandleLogin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.LoginStateLoggedIn, state)
	assert.Equal(t, []domain.LoginState{
		domain.LoginStateCheckingUI,
		domain.LoginStateInjectingCredentials,
		domain.LoginStateAwaitingManualLogin,
		domain.LoginStateLoggedIn,
	}, adapter.loginTrail)
	assert.Zero(t, page.Reloads())
}

func TestAnonymousSitesDoNotTreatInputAsLogin(t *testing.T) {
	t.Parallel()

	page, _ := openPage(t)
	page.Set("#prompt", fake.NewElement())
	deps, _ := testDeps()

	profile := testProfile("chatgpt")
	profile.Selectors.LoggedIn = ""
	assert.False(t, newChatGPT(profile, page, deps).IsLoggedIn(context.Background()))
	assert.True(t, newDeepSeek(profile, page, deps).IsLoggedIn(context.Background()))

	profile.Auth.Kind = domain.AuthKindNone
	assert.True(t, newChatGPT(profile, page, deps).IsLoggedIn(context.Background()))
}

func TestParseCookieHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		header      string
		defaultName string
		want        []string
		wantErr     bool
	}{
		{name: "pairs", header: "a=1; b=2", want: []string{"a=1", "b=2"}},
		{name: "value with equals", header: "tok=abc==", want: []string{"tok=abc=="}},
		{name: "bare value uses default name", header: "abc", defaultName: "sessionid", want: []string{"sessionid=abc"}},
		{name: "bare value without default", header: "abc", wantErr: true},
		{name: "empty", header: " ; ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cookies, err := ParseCookieHeader(tt.header, "www.doubao.com", tt.defaultName)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			var got []string
			for _, c := range cookies {
				got = append(got, c.Name+"="+c.Value)
				assert.Equal(t, ".doubao.com", c.Domain)
				assert.Equal(t, "/", c.Path)
				assert.True(t, c.Secure)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
