package domain

type LoginState string

const (
	LoginStateUnknown              LoginState = "unknown"
	LoginStateCheckingUI           LoginState = "checking_ui"
	LoginStateInjectingCredentials LoginState = "injecting_credentials"
	LoginStateAwaitingManualLogin  LoginState = "awaiting_manual_login"
	LoginStateLoggedIn             LoginState = "logged_in"
	LoginStateLoginFailed          LoginState = "login_failed"
)

func (s LoginState) Terminal() bool {
	return s == LoginStateLoggedIn || s == LoginStateLoginFailed
}

var loginTransitions = map[LoginState][]LoginState{
	LoginStateUnknown:              {LoginStateCheckingUI},
	LoginStateCheckingUI:           {LoginStateLoggedIn, LoginStateInjectingCredentials, LoginStateAwaitingManualLogin},
	LoginStateInjectingCredentials: {LoginStateLoggedIn, LoginStateAwaitingManualLogin},
	LoginStateAwaitingManualLogin:  {LoginStateLoggedIn, LoginStateLoginFailed},
}

// CanTransition reports whether the login state machine permits moving from s to next.
func (s LoginState) CanTransition(next LoginState) bool {
	for _, allowed := range loginTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
