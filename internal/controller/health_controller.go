package controller

import (
	"skillforge_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type HealthController struct {
	Mongo *mongo.Client
	Redis *redis.Client
}

func NewHealthController(mongoClient *mongo.Client, rdb *redis.Client) *HealthController {
	return &HealthController{Mongo: mongoClient, Redis: rdb}
}

// HealthCheck godoc
// @Summary Liveness and dependency status
// @Tags health
// @Produce  json
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	status := gin.H{"status": "ok", "mongo": "up", "redis": "up"}

	if err := c.Mongo.Ping(ctx.Request.Context(), readpref.Primary()); err != nil {
		status["status"] = "degraded"
		status["mongo"] = "down"
	}
	if c.Redis != nil {
		if err := c.Redis.Ping(ctx.Request.Context()).Err(); err != nil {
			status["status"] = "degraded"
			status["redis"] = "down"
		}
	}
	util.Success(ctx, status)
}
