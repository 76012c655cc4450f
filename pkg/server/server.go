// Package server exposes the command executor over the two transports:
// an HTTP JSON API and a line-oriented serial channel. Both relay the
// same grammar and return the same Result contract.
package server

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/gwillem/roboarm/pkg/command"
	"github.com/gwillem/roboarm/pkg/motion"
)

// Server is the HTTP JSON API.
type Server struct {
	app     *fiber.App
	exec    *command.Executor
	coord   *motion.Coordinator
	started time.Time
}

// New creates the HTTP server and registers all routes.
func New(exec *command.Executor, coord *motion.Coordinator) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			DisableStartupMessage: true,
		}),
		exec:    exec,
		coord:   coord,
		started: time.Now(),
	}

	s.app.Use(recover.New())
	s.app.Use(logger.New())
	s.app.Use(cors.New())

	s.app.Get("/", s.handleIndex)
	s.app.Get("/api/status", s.handleStatus)
	s.app.Post("/api/command", s.handleCommand)
	s.app.Post("/api/move", s.handleMove)
	s.app.Post("/api/enable", s.handleEnable)
	s.app.Get("/api/config", s.handleConfig)

	return s
}

// App returns the underlying fiber app, used by tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves the API on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	st := s.coord.Status()

	positions := make(map[string]int64, len(st.Joints))
	targets := make(map[string]int64, len(st.Joints))
	for i, j := range st.Joints {
		key := fmt.Sprintf("j%d", i+1)
		positions[key] = j.Position
		targets[key] = j.Target
	}

	return c.JSON(fiber.Map{
		"enabled":   st.Enabled,
		"moving":    st.Moving,
		"positions": positions,
		"targets":   targets,
		"uptime":    int64(time.Since(s.started).Seconds()),
	})
}

type commandRequest struct {
	Command string `json:"command"`
}

func (s *Server) handleCommand(c *fiber.Ctx) error {
	var req commandRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	if req.Command == "" {
		return badRequest(c, "missing 'command' field")
	}

	res := s.exec.Execute(req.Command)
	code := fiber.StatusOK
	if !res.OK {
		code = fiber.StatusBadRequest
	}
	return c.Status(code).JSON(res)
}

type moveRequest map[string]int64

func (s *Server) handleMove(c *fiber.Ctx) error {
	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}

	// Translate the structured payload into the equivalent G0 line so
	// both transports share one validation path.
	line := "G0"
	for i := range s.coord.Joints() {
		if v, ok := req[fmt.Sprintf("j%d", i+1)]; ok {
			line += fmt.Sprintf(" J%d:%d", i+1, v)
		}
	}
	if line == "G0" {
		return badRequest(c, "no joint positions specified, use j1..j6")
	}

	res := s.exec.Execute(line)
	code := fiber.StatusOK
	if !res.OK {
		code = fiber.StatusBadRequest
	}
	return c.Status(code).JSON(fiber.Map{
		"success": res.OK,
		"message": res.Message,
		"command": line,
	})
}

type enableRequest struct {
	Enabled bool `json:"enabled"`
}

func (s *Server) handleEnable(c *fiber.Ctx) error {
	var req enableRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}

	if req.Enabled {
		if err := s.coord.Enable(); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		}
	} else {
		s.coord.Disable()
	}

	return c.JSON(fiber.Map{
		"success": true,
		"enabled": s.coord.Enabled(),
	})
}

func (s *Server) handleConfig(c *fiber.Ctx) error {
	joints := s.coord.Joints()

	list := make([]fiber.Map, 0, len(joints))
	for i, cfg := range joints {
		list = append(list, fiber.Map{
			"joint":     i + 1,
			"name":      cfg.Name,
			"servo_id":  cfg.ServoID,
			"min_pos":   cfg.MinPos,
			"max_pos":   cfg.MaxPos,
			"max_speed": cfg.MaxSpeed,
			"accel":     cfg.Accel,
		})
	}

	return c.JSON(fiber.Map{
		"joint_count": len(joints),
		"joints":      list,
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}
