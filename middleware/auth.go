package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	professionalRepo "turnia/database/repository/professional"
	userRepo "turnia/database/repository/user"
	"turnia/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
)

// bearerToken extracts and validates the bearer token, returning the raw
// token plus its subject and role claims. A false return means the request
// was already aborted with 401.
func bearerToken(c *gin.Context) (token, subject, role string, ok bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
		return "", "", "", false
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	subject, role, err := utils.ExtractClaimsFromToken(tokenString)
	if err != nil || subject == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return "", "", "", false
	}
	return tokenString, subject, role, true
}

// checkTokenHash compares the request token's hash against the stored hash,
// consulting the Redis auth cache first and falling back to the given lookup.
func checkTokenHash(accountID, computedHash string, lookup func() (string, error)) bool {
	ctx := context.Background()
	cacheKey := utils.AuthCachePrefix + accountID

	authCache := utils.GetAuthCacheClient()
	cacheEnabled := authCache != nil

	if cacheEnabled {
		cachedHash, err := authCache.Get(ctx, cacheKey).Result()
		if err == nil {
			if cachedHash == computedHash {
				_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
				return true
			}
			return false
		} else if err != redis.Nil {
			log.Printf("WARNING: Error retrieving auth cache key: %v. Falling back to DB lookup.", err)
		}
	}

	storedHash, err := lookup()
	if err != nil || storedHash == "" || storedHash != computedHash {
		return false
	}

	if cacheEnabled {
		_ = authCache.Set(ctx, cacheKey, computedHash, utils.AuthCacheTTL).Err()
	}
	return true
}

// JWTAuthClientMiddleware authenticates client accounts. On success the
// context carries "accountID" and "role".
func JWTAuthClientMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, subject, role, ok := bearerToken(c)
		if !ok {
			return
		}
		if role != utils.RoleClient {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		valid := checkTokenHash(subject, computedHash, func() (string, error) {
			proj := bson.M{"id": 1, "token_hash": 1}
			usr, err := users.GetByIDWithProjection(subject, proj)
			if err != nil || usr == nil {
				return "", err
			}
			return usr.TokenHash, nil
		})
		if !valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
			return
		}

		c.Set("accountID", subject)
		c.Set("role", role)
		c.Next()
	}
}

// JWTAuthProfessionalMiddleware authenticates professional accounts.
func JWTAuthProfessionalMiddleware(professionals professionalRepo.ProfessionalRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, subject, role, ok := bearerToken(c)
		if !ok {
			return
		}
		if role != utils.RoleProfessional {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		valid := checkTokenHash(subject, computedHash, func() (string, error) {
			proj := bson.M{"id": 1, "token_hash": 1}
			p, err := professionals.GetByIDWithProjection(subject, proj)
			if err != nil || p == nil {
				return "", err
			}
			return p.TokenHash, nil
		})
		if !valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
			return
		}

		c.Set("accountID", subject)
		c.Set("role", role)
		c.Next()
	}
}

// JWTAuthAnyMiddleware authenticates either role; booking-scoped endpoints
// check ownership themselves.
func JWTAuthAnyMiddleware(users userRepo.UserRepository, professionals professionalRepo.ProfessionalRepository) gin.HandlerFunc {
	clientMW := JWTAuthClientMiddleware(users)
	professionalMW := JWTAuthProfessionalMiddleware(professionals)
	return func(c *gin.Context) {
		_, _, role, ok := bearerToken(c)
		if !ok {
			return
		}
		switch role {
		case utils.RoleClient:
			clientMW(c)
		case utils.RoleProfessional:
			professionalMW(c)
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		}
	}
}
