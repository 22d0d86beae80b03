// internal/storefront/shell.go
package storefront

import (
	"errors"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// View is the screen the storefront shows.
type View string

const (
	ViewHome            View = "home"
	ViewAdmin           View = "admin"
	ViewProductDetail   View = "product-detail"
	ViewCategoryResults View = "category-results"
	ViewCategories      View = "categories"
	ViewSearchResults   View = "search-results"
	ViewAllProducts     View = "all-products"
)

// State is everything the display needs to render the current screen.
// AuthPrompt is raised over the current view when a guest asks for admin.
type State struct {
	View       View
	ProductID  string
	Category   string
	Query      string
	AuthPrompt bool
	Notice     string
}

// Shell owns view state and the current identity. Every transition is
// local and synchronous.
type Shell struct {
	mu       sync.Mutex
	state    State
	user     CurrentUser
	store    Store
	activity *ActivityLog
}

// NewShell restores the saved user, or starts as a fresh guest when none is
// saved or the saved copy is unreadable.
func NewShell(store Store) (*Shell, error) {
	s := &Shell{
		state:    State{View: ViewHome},
		store:    store,
		activity: NewActivityLog(),
	}

	user, err := store.Load()
	if err != nil && !errors.Is(err, errCorruptSession) {
		return nil, err
	}
	if user == nil {
		if err != nil {
			logrus.WithError(err).Warn("Discarding stored session")
		}
		guest := NewGuest()
		if err := store.Save(guest); err != nil {
			return nil, err
		}
		user = &guest
	}
	s.user = *user
	return s, nil
}

func (s *Shell) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Shell) User() CurrentUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Shell) Activity() *ActivityLog {
	return s.activity
}

// Authorize checks action for the current user.
func (s *Shell) Authorize(action Action) Decision {
	return Authorize(s.User(), action)
}

// Nav handles a bottom-navigation tap. Admin goes through OpenAdmin.
func (s *Shell) Nav(view View) Decision {
	switch view {
	case ViewAdmin:
		return s.OpenAdmin()
	case ViewHome, ViewCategories, ViewAllProducts:
		s.set(State{View: view})
		return allow()
	default:
		return deny("not a navigation target")
	}
}

func (s *Shell) GoHome() {
	s.set(State{View: ViewHome})
}

// OpenAllProducts follows a banner tap.
func (s *Shell) OpenAllProducts() {
	s.set(State{View: ViewAllProducts})
}

func (s *Shell) OpenCategories() {
	s.set(State{View: ViewCategories})
}

func (s *Shell) OpenCategory(category string) {
	s.set(State{View: ViewCategoryResults, Category: category})
	s.track(ActivityViewCategory, category)
}

// Search shows results for query. A blank query leaves the view alone.
func (s *Shell) Search(query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return false
	}
	s.set(State{View: ViewSearchResults, Query: query})
	s.track(ActivitySearch, query)
	return true
}

func (s *Shell) OpenProduct(productID string) {
	s.set(State{View: ViewProductDetail, ProductID: productID})
	s.track(ActivityViewProduct, productID)
}

func (s *Shell) ClickWhatsApp(productID string) {
	s.track(ActivityClickWhatsApp, productID)
}

func (s *Shell) ClickCall(productID string) {
	s.track(ActivityClickCall, productID)
}

// OpenAdmin switches to the admin view, or raises the auth prompt over the
// current view when the user may not enter.
func (s *Shell) OpenAdmin() Decision {
	s.mu.Lock()
	defer s.mu.Unlock()

	decision := Authorize(s.user, ActionOpenAdmin)
	if !decision.Allowed {
		s.state.AuthPrompt = true
		s.state.Notice = decision.Reason
		return decision
	}
	s.state = State{View: ViewAdmin}
	return decision
}

func (s *Shell) DismissAuthPrompt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.AuthPrompt = false
	s.state.Notice = ""
}

// SignIn replaces the guest with an authenticated user and persists it.
func (s *Shell) SignIn(user CurrentUser) error {
	if user.IsGuest() {
		return errors.New("cannot sign in as a guest")
	}
	if err := s.store.Save(user); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.state.AuthPrompt = false
	s.state.Notice = ""
	return nil
}

// Logout starts over as a new guest on the home view.
func (s *Shell) Logout() error {
	guest := NewGuest()
	if err := s.store.Save(guest); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = guest
	s.state = State{View: ViewHome}
	s.mu.Unlock()

	s.activity.Reset()
	return nil
}

func (s *Shell) set(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// track records activity only while browsing as a guest.
func (s *Shell) track(t ActivityType, ref string) {
	if s.User().IsGuest() {
		s.activity.Record(t, ref)
	}
}
