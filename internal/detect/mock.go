package detect

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// MockResponse returns the canned detection payload served by detectord:
// a nine-room plan with five windows and four doors, traced from the
// sample drawing the detection model was demoed on.
func MockResponse() Response {
	return Response{
		ScaleFactor: 0.3179235808186732,
		RoomCoords: []Coord{
			{StartPoint: [2]float64{79.72, 309.92}, EndPoint: [2]float64{282.47, 514.69}, Color: "red"},
			{StartPoint: [2]float64{361.44, 308.81}, EndPoint: [2]float64{578.84, 513.71}, Color: "blue"},
			{StartPoint: [2]float64{76.62, 99.87}, EndPoint: [2]float64{296.72, 307.18}, Color: "green"},
			{StartPoint: [2]float64{286.43, 356.25}, EndPoint: [2]float64{357.48, 515.31}, Color: "orange"},
			{StartPoint: [2]float64{465.05, 309.37}, EndPoint: [2]float64{578.01, 345.34}, Color: "purple"},
			{StartPoint: [2]float64{334.35, 99.76}, EndPoint: [2]float64{578.51, 305.74}, Color: "cyan"},
			{StartPoint: [2]float64{71.56, 104.02}, EndPoint: [2]float64{637.41, 570.62}, Color: "magenta"},
			{StartPoint: [2]float64{198.20, 309.47}, EndPoint: [2]float64{282.06, 349.01}, Color: "red"},
			{StartPoint: [2]float64{286.98, 267.18}, EndPoint: [2]float64{357.89, 351.60}, Color: "blue"},
		},
		WindowsCoords: []Coord{
			{StartPoint: [2]float64{462.60, 93.19}, EndPoint: [2]float64{532.91, 104.65}, Color: "cyan"},
			{StartPoint: [2]float64{153.14, 93.59}, EndPoint: [2]float64{223.26, 105.56}, Color: "cyan"},
			{StartPoint: [2]float64{301.46, 513.92}, EndPoint: [2]float64{344.20, 521.79}, Color: "cyan"},
			{StartPoint: [2]float64{346.26, 93.14}, EndPoint: [2]float64{416.40, 104.09}, Color: "cyan"},
			{StartPoint: [2]float64{435.06, 512.57}, EndPoint: [2]float64{505.05, 522.00}, Color: "cyan"},
		},
		DoorCoords: []Coord{
			{StartPoint: [2]float64{315.43, 351.53}, EndPoint: [2]float64{356.40, 395.82}, Color: "purple"},
			{StartPoint: [2]float64{244.42, 311.22}, EndPoint: [2]float64{287.67, 351.01}, Color: "purple"},
			{StartPoint: [2]float64{356.44, 311.23}, EndPoint: [2]float64{400.54, 350.45}, Color: "purple"},
			{StartPoint: [2]float64{257.94, 264.28}, EndPoint: [2]float64{303.47, 302.64}, Color: "purple"},
		},
	}
}

// NewMockApp builds the detectord HTTP application. It serves the mock
// payload on the same contract a real detection backend would use, so
// the desktop client can be developed and demoed without one.
func NewMockApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "FloorTrace Detector (mock)",
	})

	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})
	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	app.Post("/api/detect", func(c fiber.Ctx) error {
		var req detectRequest
		if err := c.Bind().Body(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if req.Image == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "image required",
			})
		}

		resp := MockResponse()
		// A manually calibrated scale forwarded by the client wins over the
		// detector's own estimate.
		if req.ScaleFactor > 0 {
			resp.ScaleFactor = req.ScaleFactor
		}
		return c.JSON(envelope{Response: resp})
	})

	return app
}
