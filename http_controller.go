package bearer

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"

	"github.com/corvid-labs/go-bearer/middleware/jwtware"
)

// AuthenticateRequest is the issuance payload, accepted form or JSON encoded.
type AuthenticateRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Validate checks the payload shape. The password may be empty; verification
// still runs and fails uniformly.
func (r AuthenticateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 254)),
		validation.Field(&r.Password, validation.Length(0, 1024)),
	)
}

// AuthenticateResponse is the issuance result. Failed attempts carry no
// detail about which check rejected them.
type AuthenticateResponse struct {
	Succeeded bool   `json:"succeeded"`
	Token     string `json:"token,omitempty"`
}

// AuthController exposes the token issuance and current-identity endpoints.
type AuthController struct {
	auth   *Authenticator
	cfg    Config
	logger Logger
}

// NewAuthController returns a controller bound to an Authenticator.
func NewAuthController(auth *Authenticator, cfg Config) *AuthController {
	return &AuthController{
		auth:   auth,
		cfg:    cfg,
		logger: defLogger{},
	}
}

func (ct *AuthController) WithLogger(logger Logger) *AuthController {
	if logger != nil {
		ct.logger = logger
	}
	return ct
}

// Authenticate handles POST /authenticate: verifies the credentials and
// answers {succeeded, token}. Every credential rejection is the same 403;
// store outages are a 503.
func (ct *AuthController) Authenticate(c *fiber.Ctx) error {
	var req AuthenticateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(AuthenticateResponse{})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(AuthenticateResponse{})
	}

	token, err := ct.auth.Issue(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if IsStoreUnavailable(err) {
			ct.logger.Error("authentication unavailable", "error", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(AuthenticateResponse{})
		}
		ct.logger.Debug("authentication rejected", "username", req.Username)
		return c.Status(fiber.StatusForbidden).JSON(AuthenticateResponse{})
	}

	return c.JSON(AuthenticateResponse{Succeeded: true, Token: token})
}

// CurrentUser handles GET /currentUser behind the token guard: it projects
// the validated claims into the UserInfo snapshot.
func (ct *AuthController) CurrentUser(c *fiber.Ctx) error {
	return c.JSON(UserInfoFromLocals(c, ct.cfg.GetContextKey()))
}

// ProtectedRoute returns the bearer-token guard wired to this controller's
// codec and transport configuration.
func (ct *AuthController) ProtectedRoute() fiber.Handler {
	codec := ct.auth.Codec()
	return jwtware.New(jwtware.Config{
		Decoder: jwtware.TokenDecoderFunc(func(raw string) (any, error) {
			return codec.Decode(raw)
		}),
		ContextKey:  ct.cfg.GetContextKey(),
		TokenLookup: ct.cfg.GetTokenLookup(),
		AuthScheme:  ct.cfg.GetAuthScheme(),
	})
}

// RegisterAuthRoutes mounts the issuance and current-identity endpoints.
func RegisterAuthRoutes(app fiber.Router, ct *AuthController) {
	app.Post("/authenticate", ct.Authenticate)
	app.Get("/currentUser", ct.ProtectedRoute(), ct.CurrentUser)
}
