// Package auth provides authentication and authorization for the API.
//
// Clients authenticate with a bearer token issued by /register or /login:
//
//	Authorization: Bearer <jwt>
//
// Tokens are HS256 JWTs carrying only the user id (sub) plus issue and expiry
// times. Roles are looked up from the database on every request so that a
// role change takes effect immediately.
//
// # Configuration
//
//	AUTH_JWT_SECRET=<random>      # Required when APP_ENVIRONMENT=production
//	AUTH_TOKEN_EXPIRY=720h        # Token lifetime (30 days default)
//	AUTH_BCRYPT_COST=12           # bcrypt cost factor
//	AUTH_MAX_LOGIN_ATTEMPTS=5     # Failed logins before lockout
//
// # Usage
//
//	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
//	authService, err := auth.NewService(usersRepo, tokens, cfg.Auth)
//	authMiddleware := auth.NewMiddleware(authService)
//
//	api := router.Group("/api", authMiddleware.RequireAuth())
//	api.GET("/admin", authMiddleware.RequireRole(entities.RoleAdmin), handler)
//
// Extract the caller in handlers:
//
//	userID := auth.GetUserID(c)
package auth
