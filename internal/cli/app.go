package cli

import (
	"fmt"
	"os"

	"github.com/AkhandAgrawal/Bartr/internal/api"
	"github.com/AkhandAgrawal/Bartr/internal/chat"
	"github.com/AkhandAgrawal/Bartr/internal/identity"
	"github.com/AkhandAgrawal/Bartr/internal/session"
	"github.com/AkhandAgrawal/Bartr/internal/store"
)

// app wires the full client stack for one command invocation: durable
// credential storage, identity resolution, the four service clients,
// and the chat subsystem.
type app struct {
	db       *store.DB
	tokens   *session.TokenStore
	profiles *store.ProfileCache
	keycloak *identity.KeycloakSession // nil when not configured
	resolver *identity.Resolver

	users         *api.UserService
	matching      *api.MatchingService
	chatREST      *api.ChatService
	notifications *api.NotificationService

	conversations *chat.ConversationStore
	transport     *chat.Transport
	history       *chat.Reconciler
}

// newApp builds the stack from the loaded config. Failure to open the
// credentials database degrades to in-memory tokens rather than
// refusing to run.
func newApp() (*app, error) {
	a := &app{}

	var kv session.KV
	db, err := store.Open(paths.Credentials, log)
	if err != nil {
		log.Warn().Err(err).Msg("credentials db unavailable, tokens will not persist")
		kv = session.NewMemoryKV()
	} else {
		a.db = db
		kv = store.NewCredentials(db)
		a.profiles = store.NewProfileCache(db)
	}

	a.tokens = session.NewTokenStore(kv, log)
	a.keycloak = identity.NewKeycloakSession(cfg.Keycloak, log)
	if a.keycloak != nil {
		a.resolver = identity.NewResolver(a.keycloak, a.tokens)
	} else {
		a.resolver = identity.NewResolver(nil, a.tokens)
	}

	// Warm the resolver's profile source from the durable cache.
	if a.profiles != nil {
		a.resolver.SetProfile(a.profiles.Load())
	}

	token := a.resolver.Token

	userClient := api.NewClient(cfg.Services.UserURL, token, log.Sub("user-api"))
	matchingClient := api.NewClient(cfg.Services.MatchingURL, token, log.Sub("matching-api"))
	chatClient := api.NewClient(cfg.Services.ChatURL, token, log.Sub("chat-api"))
	notificationClient := api.NewClient(cfg.Services.NotificationURL, token, log.Sub("notification-api"))

	for _, c := range []*api.Client{userClient, matchingClient, chatClient, notificationClient} {
		c.OnUnauthorized(a.handleUnauthorized)
	}

	a.users = api.NewUserService(userClient)
	a.matching = api.NewMatchingService(matchingClient)
	a.chatREST = api.NewChatService(chatClient)
	a.notifications = api.NewNotificationService(notificationClient)

	a.conversations = chat.NewConversationStore()
	a.transport = chat.NewTransport(chat.WebsocketURL(cfg.Services.ChatURL), a.conversations, log)
	a.history = chat.NewReconciler(a.chatREST, a.conversations, log)

	return a, nil
}

// handleUnauthorized is the terminal analogue of the 401 redirect:
// clear everything and tell the user to log in again.
func (a *app) handleUnauthorized() {
	a.tokens.ClearTokens()
	a.resolver.SetProfile(nil)
	if a.profiles != nil {
		a.profiles.Clear()
	}
	fmt.Fprintln(os.Stderr, "session expired — run 'bartr login' to sign in again")
}

// authenticated reports whether a usable session exists: an active
// delegated session, or a stored token that passes the expiry check.
// The check clears an expired stored token as a side effect, so a
// dead token is never attached to requests or mined for its sub claim.
func (a *app) authenticated() bool {
	if a.keycloak != nil && a.keycloak.SubjectID() != "" {
		return true
	}
	return a.tokens.IsAuthenticated()
}

// subjectID resolves the current subject id or fails with a uniform
// "not logged in" error for commands that require identity.
func (a *app) subjectID() (string, error) {
	if !a.authenticated() {
		return "", fmt.Errorf("not logged in — run 'bartr login' first")
	}
	if id := a.resolver.Resolve(); id != "" {
		return id, nil
	}
	return "", fmt.Errorf("not logged in — run 'bartr login' first")
}

// Close releases the credential database.
func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
