package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/localnerve/smart-reviewer/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestContainers holds the containers started for an integration run
type TestContainers struct {
	Network     *testcontainers.DockerNetwork
	DBContainer testcontainers.Container
	// Config points at the mapped database port on the host
	Config *config.Config
}

// Terminate stops every container and removes the network. t may be nil.
func (tc *TestContainers) Terminate(t *testing.T) {
	ctx := context.Background()
	if tc.DBContainer != nil {
		if err := tc.DBContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate database: %v", err)
		}
	}
	if tc.Network != nil {
		if err := tc.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

// StartDatabase starts the DB_IMAGE container for DB_TYPE (postgres or mysql/mariadb)
// and returns a config that reaches it. DB_DATABASE, DB_USER and DB_PASSWORD name the
// database and account created at startup.
func StartDatabase(t *testing.T) (*TestContainers, error) {
	ctx := context.Background()
	tc := &TestContainers{}

	dbType := getEnv("DB_TYPE", "postgres")
	image := os.Getenv("DB_IMAGE")
	if image == "" {
		return nil, fmt.Errorf("DB_IMAGE is not set")
	}

	portNumber := getEnv("DB_PORT", defaultPort(dbType))
	tcpDBPort, err := nat.NewPort("tcp", portNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to create DB port: %w", err)
	}

	nw, err := network.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create network: %w", err)
	}
	tc.Network = nw

	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(tcpDBPort)},
			Env:          dbInitEnv(dbType),
			WaitingFor: wait.ForAll(
				wait.ForListeningPort(tcpDBPort),
				readyLog(dbType),
			).WithDeadline(90 * time.Second),
			Networks: []string{nw.Name},
			NetworkAliases: map[string][]string{
				nw.Name: {"db"},
			},
		},
		Started: true,
	})
	if err != nil {
		tc.Terminate(t)
		return nil, fmt.Errorf("failed to start database: %w", err)
	}
	tc.DBContainer = dbContainer

	host, err := dbContainer.Host(ctx)
	if err != nil {
		tc.Terminate(t)
		return nil, fmt.Errorf("failed to get database host: %w", err)
	}
	mapped, err := dbContainer.MappedPort(ctx, tcpDBPort)
	if err != nil {
		tc.Terminate(t)
		return nil, fmt.Errorf("failed to get database port: %w", err)
	}

	tc.Config = &config.Config{
		DBType:               dbType,
		DBHost:               host,
		DBPort:               mapped.Port(),
		DBDatabase:           getEnv("DB_DATABASE", "reviewer"),
		DBUser:               getEnv("DB_USER", "reviewer"),
		DBPassword:           getEnv("DB_PASSWORD", "reviewer"),
		DBSSLMode:            "disable",
		DBConnectionLimit:    10,
		DBIdleTimeout:        30 * time.Second,
		DBConnMaxLifetime:    30 * time.Minute,
		DBConnectTimeout:     10 * time.Second,
		DisplayOffsetMinutes: 330,
		AnalyticsWindowDays:  30,
	}

	logMessage(t, "DB_HOST=%s DB_PORT=%s", host, mapped.Port())
	return tc, nil
}

func defaultPort(dbType string) string {
	switch dbType {
	case "mysql", "mariadb":
		return "3306"
	}
	return "5432"
}

func dbInitEnv(dbType string) map[string]string {
	switch dbType {
	case "mysql", "mariadb":
		return map[string]string{
			"MYSQL_RANDOM_ROOT_PASSWORD": "yes",
			"MYSQL_DATABASE":             getEnv("DB_DATABASE", "reviewer"),
			"MYSQL_USER":                 getEnv("DB_USER", "reviewer"),
			"MYSQL_PASSWORD":             getEnv("DB_PASSWORD", "reviewer"),
		}
	}
	return map[string]string{
		"POSTGRES_DB":       getEnv("DB_DATABASE", "reviewer"),
		"POSTGRES_USER":     getEnv("DB_USER", "reviewer"),
		"POSTGRES_PASSWORD": getEnv("DB_PASSWORD", "reviewer"),
	}
}

// readyLog waits for the server's second start, after the init scripts ran
func readyLog(dbType string) wait.Strategy {
	switch dbType {
	case "mysql", "mariadb":
		return wait.ForLog("ready for connections").WithOccurrence(2)
	}
	return wait.ForLog("database system is ready to accept connections").WithOccurrence(2)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
