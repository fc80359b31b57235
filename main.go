package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/lightning-maze/api"
	api_i "github.com/beka-birhanu/lightning-maze/api/i"
	"github.com/beka-birhanu/lightning-maze/api/identity"
	mazeapi "github.com/beka-birhanu/lightning-maze/api/maze"
	"github.com/beka-birhanu/lightning-maze/config"
	"github.com/beka-birhanu/lightning-maze/encoder/pb"
	"github.com/beka-birhanu/lightning-maze/infrastruture/gridcache"
	"github.com/beka-birhanu/lightning-maze/infrastruture/lock"
	"github.com/beka-birhanu/lightning-maze/infrastruture/repo"
	"github.com/beka-birhanu/lightning-maze/infrastruture/token"
	"github.com/beka-birhanu/lightning-maze/logger"
	"github.com/beka-birhanu/lightning-maze/service"
	"github.com/beka-birhanu/lightning-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	runRepo        i.RunRepo
	stepLocker     i.Locker
	gridCache      i.GridCache
	jwtTokenizer   i.Tokenizer
	sessionManager *service.SessionManager
	mazeController api_i.Controller
	router         *api.Router
	appLogger      i.Logger
)

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRunRepo(client *mongo.Client) {
	runRepo = repo.NewRunRepo(client, config.Envs.DBName, "runs")
	appLogger.Info("Run repository initialized")
}

// initStepLocker uses redis when REDIS_ADDR is set and in-process locks otherwise.
func initStepLocker(ctx context.Context) {
	if config.Envs.RedisAddr == "" {
		stepLocker = lock.NewLocalLocker()
		appLogger.Warning("REDIS_ADDR is empty, step locks are local to this process")
		return
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	stepLocker = lock.NewRedisLocker(redisClient, 0)
	appLogger.Info("Connected to Redis")
}

func initGridCache() {
	cache, err := gridcache.New(config.Envs.GridCacheSize)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating grid cache: %v", err))
		os.Exit(1)
	}
	gridCache = cache
	appLogger.Info("Grid cache initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initSessionManager() {
	sessionLogger, err := logger.New("SESSION-MANAGER", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager logger: %v", err))
		os.Exit(1)
	}

	sessionManager, err = service.NewSessionManager(&service.Config{
		Locker:             stepLocker,
		RunRepo:            runRepo,
		GridCache:          gridCache,
		Tokenizer:          jwtTokenizer,
		Logger:             sessionLogger,
		MaxDimension:       config.Envs.MazeMaxDimension,
		DefaultDeadEndProb: config.Envs.MazeDefaultDeadEndProb,
		DefaultLoopProb:    config.Envs.MazeDefaultLoopProb,
		TokenTTL:           time.Duration(config.Envs.DriverTokenTTLMinutes) * time.Minute,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Session manager initialized")
}

func initMazeController() {
	var err error
	mazeController, err = mazeapi.NewMazeController(sessionManager, &pb.Protobuf{})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{mazeController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	var err error
	appLogger, err = logger.New("APP", config.ColorGreen, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating app logger: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	initMongo(ctx)
	initStepLocker(ctx)
	cancel()
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}()

	initRunRepo(mongoClient)
	initGridCache()
	initJWTTokenizer()
	initSessionManager()
	defer sessionManager.StopAll()
	initMazeController()
	initRouter(jwtTokenizer)

	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
