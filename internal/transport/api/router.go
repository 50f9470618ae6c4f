package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-finapi/internal/transport/api/middlewares"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	RouteGroup     = "/api/v1"
	UsersRoute     = "/users"
	SessionsRoute  = "/sessions"
	ProfileRoute   = "/profile"
	BalanceRoute   = "/statements/balance"
	DepositRoute   = "/statements/deposit"
	WithdrawRoute  = "/statements/withdraw"
	TransferRoute  = "/statements/transfers/:recipient_id"
	StatementRoute = "/statements/:statement_id"

	MetricsRoute = "/metrics"
)

type RouterArgs struct {
	Logger           *logrus.Logger
	UserService      UserServicer
	StatementService StatementServicer
	BalanceService   BalanceServicer
	JWTSecretKey     []byte
}

func New(args RouterArgs) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Metrics())
	r.Use(middlewares.Errors())

	authHandler := NewAuthHandler(args.UserService)
	profileHandler := NewProfileHandler(args.UserService)
	statementsHandler := NewStatementsHandler(args.StatementService, args.BalanceService)
	balanceHandler := NewBalanceHandler(args.BalanceService)

	r.GET(MetricsRoute, gin.WrapH(promhttp.Handler()))

	api := r.Group(RouteGroup)

	api.POST(UsersRoute, middlewares.NonAuthRequired(args.JWTSecretKey), authHandler.Register)
	api.POST(SessionsRoute, middlewares.NonAuthRequired(args.JWTSecretKey), authHandler.Login)

	api.Use(middlewares.AuthRequired(args.JWTSecretKey))
	// ниже все роуты группы требуют авторизованного пользователя.
	api.GET(ProfileRoute, profileHandler.Show)

	api.GET(BalanceRoute, balanceHandler.Index)
	api.POST(DepositRoute, statementsHandler.Deposit)
	api.POST(WithdrawRoute, statementsHandler.Withdraw)
	api.POST(TransferRoute, statementsHandler.Transfer)
	api.GET(StatementRoute, statementsHandler.Show)
	return r
}
