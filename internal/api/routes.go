package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Get("/setup-status", handler.SetupStatus)
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	users := api.Group("/users", handler.AuthRequired)
	users.Get("", handler.ListUsers)

	proposals := api.Group("/proposals", handler.AuthRequired)
	proposals.Get("", handler.ListProposals)
	proposals.Post("", handler.CreateProposal)
	proposals.Get("/:proposalID", handler.GetProposal)
	proposals.Patch("/:proposalID", handler.UpdateProposal)
	proposals.Delete("/:proposalID", handler.DeleteProposal)

	proposals.Get("/:proposalID/comments", handler.ListComments)
	proposals.Post("/:proposalID/comments", handler.CreateComment)

	proposals.Get("/:proposalID/availability", handler.GetMyAvailability)
	proposals.Put("/:proposalID/availability", handler.PutMyAvailability)
	proposals.Delete("/:proposalID/availability", handler.DeleteMyAvailability)
	proposals.Get("/:proposalID/availabilities", handler.ListAvailabilities)
	proposals.Get("/:proposalID/calendar", handler.GetCalendar)

	proposals.Post("/:proposalID/overlap-options", handler.GenerateOverlapOptions)

	decisions := proposals.Group("/:proposalID/decisions/:dimension")
	decisions.Get("", handler.GetDecisionSummary)
	decisions.Patch("/mode", handler.UpdateDecisionMode)
	decisions.Post("/options", handler.CreateDecisionOption)
	decisions.Put("/vote", handler.PutDecisionVote)
	decisions.Delete("/vote", handler.DeleteDecisionVote)
	decisions.Post("/confirm", handler.ConfirmDecision)
	decisions.Post("/reopen", handler.ReopenDecision)

	options := api.Group("/options", handler.AuthRequired)
	options.Delete("/:optionID", handler.DeleteDecisionOption)

	comments := api.Group("/comments", handler.AuthRequired)
	comments.Delete("/:commentID", handler.DeleteComment)
}
