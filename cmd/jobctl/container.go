package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Abraxas-365/hireboard/internal/config"
	"github.com/Abraxas-365/hireboard/pkg/fsx"
	"github.com/Abraxas-365/hireboard/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/hireboard/pkg/httpx"
	"github.com/Abraxas-365/hireboard/pkg/listx"
	"github.com/Abraxas-365/hireboard/pkg/logx"
	"github.com/Abraxas-365/hireboard/pkg/session"
	"github.com/Abraxas-365/hireboard/recruitment/application/applicationinfra"
	"github.com/Abraxas-365/hireboard/recruitment/assist/assistinfra"
	"github.com/Abraxas-365/hireboard/recruitment/auth/authinfra"
	"github.com/Abraxas-365/hireboard/recruitment/auth/authsrv"
	"github.com/Abraxas-365/hireboard/recruitment/employer/employerinfra"
	"github.com/Abraxas-365/hireboard/recruitment/interview/interviewinfra"
	"github.com/Abraxas-365/hireboard/recruitment/job/jobinfra"
	"github.com/Abraxas-365/hireboard/recruitment/notification/notificationinfra"
	"github.com/Abraxas-365/hireboard/recruitment/seeker/seekerinfra"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/redis/go-redis/v9"
)

const redisReadyTimeout = 10 * time.Second

// Container holds all CLI dependencies
type Container struct {
	Config config.Cfg

	// Infrastructure
	Redis      *redis.Client
	FileSystem fsx.FileReader
	HTTP       *httpx.Client
	Confirmer  listx.Confirmer

	// Session
	Session *authsrv.SessionStore
	Auth    *authsrv.Service

	// Gateways
	Jobs          *jobinfra.HTTPGateway
	Applications  *applicationinfra.HTTPGateway
	Interviews    *interviewinfra.HTTPGateway
	Notifications *notificationinfra.HTTPGateway
	Seeker        *seekerinfra.HTTPGateway
	Employer      *employerinfra.HTTPGateway
	Assist        *assistinfra.HTTPGateway
}

// NewContainer wires the SDK for one CLI invocation and restores the
// persisted session
func NewContainer(ctx context.Context, cfg config.Cfg, confirmer listx.Confirmer) (*Container, error) {
	c := &Container{Config: cfg, Confirmer: confirmer}
	if err := c.initInfrastructure(ctx); err != nil {
		return nil, err
	}
	c.initGateways()

	c.Session.OnSessionEnded(func(reason authsrv.EndReason) {
		if reason == authsrv.EndUnauthorized {
			logx.Warn("Your session has expired, run `jobctl login` again")
		}
	})
	if err := c.Session.Restore(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	// 1. Session storage
	storage, err := c.sessionStorage(ctx)
	if err != nil {
		return err
	}
	c.Session = authsrv.NewSessionStore(storage)

	// 2. Upload sources: local paths, s3:// when a bucket is configured
	router := fsx.NewRouter(fsx.NewLocalFileSystem(""))
	if c.Config.AWS.Bucket != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(c.Config.AWS.Region))
		if err != nil {
			return fmt.Errorf("unable to load AWS config: %w", err)
		}
		router.Handle("s3", fsxs3.NewS3FileSystem(s3.NewFromConfig(awsCfg), c.Config.AWS.Bucket))
	}
	c.FileSystem = router

	// 3. HTTP client
	c.HTTP = httpx.New(httpx.Config{
		BaseURL:   c.Config.API.BaseURL,
		Timeout:   c.Config.API.Timeout,
		UserAgent: "jobctl/" + version,
	},
		httpx.WithTokenSource(c.Session),
		httpx.WithUnauthorizedHandler(c.Session),
	)
	return nil
}

func (c *Container) sessionStorage(ctx context.Context) (session.Storage, error) {
	switch c.Config.Session.Store {
	case config.SessionStoreMemory:
		return session.NewMemoryStorage(), nil
	case config.SessionStoreRedis:
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     c.Config.Redis.Addr,
			Password: c.Config.Redis.Password,
			DB:       0,
		})
		rs := session.NewRedisStorage(c.Redis, "hireboard:session", 0)
		if err := rs.WaitReady(ctx, redisReadyTimeout); err != nil {
			return nil, fmt.Errorf("redis session storage at %s: %w", c.Config.Redis.Addr, err)
		}
		return rs, nil
	default:
		var key *[32]byte
		if len(c.Config.Session.Key) == 32 {
			key = new([32]byte)
			copy(key[:], c.Config.Session.Key)
		}
		return session.NewFileStorage(c.Config.Session.File, key), nil
	}
}

func (c *Container) initGateways() {
	c.Auth = authsrv.NewService(authinfra.NewHTTPGateway(c.HTTP), c.Session)
	c.Jobs = jobinfra.NewHTTPGateway(c.HTTP)
	c.Applications = applicationinfra.NewHTTPGateway(c.HTTP)
	c.Interviews = interviewinfra.NewHTTPGateway(c.HTTP)
	c.Notifications = notificationinfra.NewHTTPGateway(c.HTTP)
	c.Seeker = seekerinfra.NewHTTPGateway(c.HTTP)
	c.Employer = employerinfra.NewHTTPGateway(c.HTTP)
	c.Assist = assistinfra.NewHTTPGateway(c.HTTP)
}

// Close releases the Redis connection when one was opened
func (c *Container) Close() {
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}

// promptConfirmer asks y/N on the terminal
func promptConfirmer(in io.Reader, out io.Writer) listx.Confirmer {
	reader := bufio.NewReader(in)
	return listx.ConfirmFunc(func(ctx context.Context, prompt string) bool {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	})
}
