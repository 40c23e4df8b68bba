package controller

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/maxmalik/FORE/golf"
	"github.com/maxmalik/FORE/golf/mockgolf"
	"github.com/maxmalik/FORE/testutils"
	"github.com/stretchr/testify/mock"
)

func TestAlertMessage(t *testing.T) {
	tests := map[string]struct {
		err      error
		expected string
	}{
		"form":            {err: &FormError{Messages: []string{"Please enter your name.", "Passwords must match."}}, expected: "Validation failed:\n- Please enter your name.\n- Passwords must match.\n"},
		"backend 422":     {err: &golf.APIError{Status: 422, Detail: "ignored"}, expected: "Validation error occurred on backend."},
		"404 with detail": {err: &golf.APIError{Status: 404, Detail: "No user found"}, expected: "No user found"},
		"401 no detail":   {err: &golf.APIError{Status: 401}, expected: "Error: Server returned code 401 with no detail"},
		"409 wrapped":     {err: errors.Join(errors.New("error registering"), &golf.APIError{Status: 409, Detail: "Email is already taken"}), expected: "Email is already taken"},
		"500":             {err: &golf.APIError{Status: 500, Detail: "boom"}, expected: "Unexpected error occurred. Please try again later."},
		"transport":       {err: errors.New("connection refused"), expected: "Unexpected error occurred. Please try again later."},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := AlertMessage(tc.err); got != tc.expected {
				t.Errorf("expected: '%s', got: '%s'", tc.expected, got)
			}
		})
	}
}

func TestValidUsername(t *testing.T) {
	tests := map[string]bool{
		"max":                   true,
		"max.malik":             true,
		"max_malik_99":          true,
		"M.a_x":                 true,
		"ab":                    false,
		"abcdefghijklmnopqrstu": false,
		"abcdefghijklmnopqrst":  true,
		"_max":                  false,
		"max.":                  false,
		"max..malik":            false,
		"max._malik":            false,
		"max malik":             false,
		"max-malik":             false,
		"mäx":                   false,
	}

	for u, expected := range tests {
		if got := ValidUsername(u); got != expected {
			t.Errorf("%s: expected %v, got %v", u, expected, got)
		}
	}
}

func TestValidPassword(t *testing.T) {
	tests := map[string]bool{
		"Passw0rd!":   true,
		"aB3#efgh":    true,
		"aB3#efg":     false,
		"password1!":  false,
		"PASSWORD1!":  false,
		"Password!!":  false,
		"Password11":  false,
		"Pass word1-": true,
	}

	for p, expected := range tests {
		if got := ValidPassword(p); got != expected {
			t.Errorf("%s: expected %v, got %v", p, expected, got)
		}
	}
}

func TestLogin_validation(t *testing.T) {
	tests := map[string]struct {
		form     LoginForm
		expected []string
	}{
		"both missing": {
			form:     LoginForm{UsernameOrEmail: "  ", Password: ""},
			expected: []string{"Please enter your username or email.", "Please enter your password."},
		},
		"password missing": {
			form:     LoginForm{UsernameOrEmail: "golfer", Password: " "},
			expected: []string{"Please enter your password."},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			client := &mockgolf.Client{}
			ctrl := newTestController(t, client)
			sess, _, _ := ctrl.LoadSession(context.Background(), "")

			err := ctrl.Login(context.Background(), sess, tc.form)
			var formErr *FormError
			if !errors.As(err, &formErr) {
				t.Fatalf("expected a FormError, got %v", err)
			}
			if !reflect.DeepEqual(tc.expected, formErr.Messages) {
				t.Errorf("expected: '%v', got: '%v'", tc.expected, formErr.Messages)
			}
			client.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
			if sess.LoggedIn() {
				t.Errorf("should not be logged in")
			}
		})
	}
}

func TestLogin(t *testing.T) {
	ctrl := newTestController(t, nil)
	ctx := context.Background()
	sess, _, _ := ctrl.LoadSession(ctx, "")
	sess.Draft.BeginSearch("leftover")

	err := ctrl.Login(ctx, sess, LoginForm{UsernameOrEmail: " golfer@example.com ", Password: testutils.UserPassword})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sess.LoggedIn() || sess.User.ID != testutils.UserID {
		t.Fatalf("expected to be logged in as %s, got %+v", testutils.UserID, sess.User)
	}
	if sess.Draft.SearchTerm != "" {
		t.Errorf("logging in should start with a fresh draft")
	}

	stored, err := ctrl.store.Get(ctx, sess.ID)
	if err != nil || !stored.LoggedIn() {
		t.Errorf("the logged in session should be saved, got %v %v", stored, err)
	}
}

func TestLogin_backendErrors(t *testing.T) {
	tests := map[string]struct {
		form     LoginForm
		expected string
	}{
		"wrong password": {form: LoginForm{UsernameOrEmail: "golfer", Password: "nope"}, expected: "Incorrect password"},
		"unknown user":   {form: LoginForm{UsernameOrEmail: "nobody", Password: "nope"}, expected: "No user found"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := newTestController(t, nil)
			sess, _, _ := ctrl.LoadSession(context.Background(), "")

			err := ctrl.Login(context.Background(), sess, tc.form)
			if err == nil {
				t.Fatalf("expected an error")
			}
			if got := AlertMessage(err); got != tc.expected {
				t.Errorf("expected: '%s', got: '%s'", tc.expected, got)
			}
			if sess.LoggedIn() {
				t.Errorf("should not be logged in")
			}
		})
	}
}

func TestRegister_validation(t *testing.T) {
	valid := RegisterForm{
		Name:                 "New Golfer",
		Username:             "new.golfer",
		Email:                "new@example.com",
		Password:             "Passw0rd!",
		PasswordConfirmation: "Passw0rd!",
	}

	tests := map[string]struct {
		change   func(f *RegisterForm)
		expected []string
	}{
		"everything missing": {
			change: func(f *RegisterForm) { *f = RegisterForm{Name: " "} },
			expected: []string{
				"Please enter your name.",
				"Please choose a username.",
				"Please enter your email.",
				"Please enter a password.",
				"Please re-enter your password.",
			},
		},
		"bad username characters": {
			change:   func(f *RegisterForm) { f.Username = "new golfer" },
			expected: []string{"Please enter a valid username."},
		},
		"double separator": {
			change:   func(f *RegisterForm) { f.Username = "new..golfer" },
			expected: []string{"Please enter a valid username."},
		},
		"username taken": {
			change:   func(f *RegisterForm) { f.Username = testutils.TakenUsername },
			expected: []string{"Username is already taken."},
		},
		"email invalid": {
			change:   func(f *RegisterForm) { f.Email = "not-an-email" },
			expected: []string{"Please enter a valid email."},
		},
		"email taken": {
			change:   func(f *RegisterForm) { f.Email = testutils.UserEmail },
			expected: []string{"Email is already taken."},
		},
		"weak password": {
			change: func(f *RegisterForm) {
				f.Password = "password"
				f.PasswordConfirmation = "password"
			},
			expected: []string{"Password must meet the requirements."},
		},
		"short password": {
			change: func(f *RegisterForm) {
				f.Password = "Pa0!"
				f.PasswordConfirmation = "Pa0!"
			},
			expected: []string{"Password must meet the requirements."},
		},
		"confirmation differs": {
			change:   func(f *RegisterForm) { f.PasswordConfirmation = "Passw0rd?" },
			expected: []string{"Passwords must match."},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := newTestController(t, nil)
			sess, _, _ := ctrl.LoadSession(context.Background(), "")

			form := valid
			tc.change(&form)
			err := ctrl.Register(context.Background(), sess, form)

			var formErr *FormError
			if !errors.As(err, &formErr) {
				t.Fatalf("expected a FormError, got %v", err)
			}
			if !reflect.DeepEqual(tc.expected, formErr.Messages) {
				t.Errorf("expected: '%v', got: '%v'", tc.expected, formErr.Messages)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	ctrl := newTestController(t, nil)
	ctx := context.Background()
	sess, _, _ := ctrl.LoadSession(ctx, "")

	err := ctrl.Register(ctx, sess, RegisterForm{
		Name:                 " New Golfer ",
		Username:             "new_golfer",
		Email:                "New@Example.com",
		Password:             "Passw0rd!",
		PasswordConfirmation: "Passw0rd!",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sess.LoggedIn() || sess.User.ID != testutils.RegisteredID {
		t.Fatalf("expected to be logged in as the new user, got %+v", sess.User)
	}
	if sess.User.Name != "New Golfer" {
		t.Errorf("name should be trimmed, got '%s'", sess.User.Name)
	}
}

func TestRegister_backendConflict(t *testing.T) {
	client := &mockgolf.Client{}
	client.On("UsernameTaken", mock.Anything, "new_golfer").Return(false)
	client.On("EmailTaken", mock.Anything, "new@example.com").Return(false)
	client.On("Register", mock.Anything, mock.Anything).Return(nil, &golf.APIError{Status: 409, Detail: "Username is already taken"})

	ctrl := newTestController(t, client)
	sess, _, _ := ctrl.LoadSession(context.Background(), "")

	err := ctrl.Register(context.Background(), sess, RegisterForm{
		Name:                 "New Golfer",
		Username:             "new_golfer",
		Email:                "new@example.com",
		Password:             "Passw0rd!",
		PasswordConfirmation: "Passw0rd!",
	})
	if got := AlertMessage(err); got != "Username is already taken" {
		t.Errorf("expected the backend's detail, got '%s'", got)
	}
	client.AssertExpectations(t)
}
