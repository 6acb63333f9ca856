package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/raushankrgupta/skinbox/app"
	"github.com/raushankrgupta/skinbox/models"
	"github.com/raushankrgupta/skinbox/storage"
	"github.com/urfave/cli/v3"
)

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Log in and keep the session",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return withApp(ctx, func(ctx context.Context, a *app.App) error {
				identity, err := a.Sessions.Login(ctx, c.String("email"))
				if err != nil {
					return err
				}
				fmt.Printf("logged in as %s (%s)\n", identity.Name, identity.Role)
				return nil
			})
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Clear the stored session",
		Action: func(ctx context.Context, c *cli.Command) error {
			return withApp(ctx, func(ctx context.Context, a *app.App) error {
				return a.Sessions.Logout(ctx)
			})
		},
	}
}

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the current session",
		Action: func(ctx context.Context, c *cli.Command) error {
			return withApp(ctx, func(ctx context.Context, a *app.App) error {
				user, err := currentUser(ctx, c, a)
				if err != nil {
					return err
				}
				if c.Bool("json") {
					return printJSON(user)
				}
				fmt.Printf("%s <%s> role=%s id=%s\n", user.Name, user.Email, user.Role, user.ID)
				return nil
			})
		},
	}
}

func catalogCommand() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "List catalog products",
		Commands: []*cli.Command{
			{
				Name:  "import",
				Usage: "Add a product from a shop page (admin)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "url", Required: true},
					&cli.StringFlag{Name: "type", Usage: "cleanser, serum, cream, spf or other"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return withApp(ctx, func(ctx context.Context, a *app.App) error {
						if _, err := requireAdmin(ctx, c, a); err != nil {
							return err
						}
						var category models.Category
						if t := c.String("type"); t != "" {
							parsed, err := models.ParseCategory(t)
							if err != nil {
								return err
							}
							category = parsed
						}
						item, err := a.Importer.Import(ctx, c.String("url"), category)
						if err != nil {
							return err
						}
						if err := a.Gateway.AddCatalogItem(ctx, item); err != nil {
							return err
						}
						return printJSON(item)
					})
				},
			},
			{
				Name:      "delete",
				Usage:     "Remove a product (admin)",
				ArgsUsage: "<product-id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withApp(ctx, func(ctx context.Context, a *app.App) error {
						if _, err := requireAdmin(ctx, c, a); err != nil {
							return err
						}
						return a.Gateway.DeleteCatalogItem(ctx, c.Args().First())
					})
				},
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return withApp(ctx, func(ctx context.Context, a *app.App) error {
				items, err := a.Gateway.GetCatalog(ctx)
				if err != nil {
					return err
				}
				if c.Bool("json") {
					return printJSON(items)
				}
				for _, item := range items {
					fmt.Printf("%-8s %-8s %6d ₽  %s, %s\n", item.ID, item.Category, item.Price, item.Name, item.Brand)
				}
				return nil
			})
		},
	}
}

// concernExample is shown in --concern usage and must stay a known concern
const concernExample = "Акне и высыпания"

func recommendCommand() *cli.Command {
	return &cli.Command{
		Name:  "recommend",
		Usage: "Fill the questionnaire and build a box",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "skin", Required: true, Usage: "dry, oily, combination or normal"},
			&cli.StringSliceFlag{Name: "concern", Usage: "repeatable, e.g. --concern \"" + concernExample + "\""},
			&cli.StringFlag{Name: "season"},
			&cli.StringFlag{Name: "allergies"},
			&cli.StringFlag{Name: "budget"},
			&cli.StringFlag{Name: "description"},
			&cli.StringFlag{Name: "language"},
			&cli.StringFlag{Name: "photo", Usage: "path to a face photo"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			profile := models.DiagnosticProfile{
				SkinType:    models.SkinType(c.String("skin")),
				Concerns:    c.StringSlice("concern"),
				Season:      c.String("season"),
				Allergies:   c.String("allergies"),
				Budget:      c.String("budget"),
				Description: c.String("description"),
				Language:    c.String("language"),
			}
			if path := c.String("photo"); path != "" {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read photo: %w", err)
				}
				profile.Photo = &models.Photo{MIMEType: http.DetectContentType(data), Data: data}
			}

			return withApp(ctx, func(ctx context.Context, a *app.App) error {
				user, err := currentUser(ctx, c, a)
				if err != nil {
					return err
				}
				box, err := a.Boxes.Generate(ctx, user, profile)
				if err != nil {
					return err
				}
				if c.Bool("json") {
					return printJSON(box)
				}
				printBox(os.Stdout, box)
				return nil
			})
		},
	}
}

func printBox(w io.Writer, box models.Box) {
	fmt.Fprintf(w, "Box %s (%s)\n\n", box.ID, box.Status)
	fmt.Fprintf(w, "Analysis: %s\n\nCauses: %s\n\nStrategy: %s\n\n", box.Recommendation.Analysis, box.Recommendation.Causes, box.Recommendation.Strategy)
	fmt.Fprintf(w, "Morning: %s\nEvening: %s\n\n", box.Recommendation.Routine.Morning, box.Recommendation.Routine.Evening)
	for _, p := range box.Products {
		fmt.Fprintf(w, "  %-8s %6d ₽  %s", p.ID, p.Price, p.Name)
		if why := box.Recommendation.Reasoning[p.ID]; why != "" {
			fmt.Fprintf(w, ": %s", why)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "\nTotal: %d ₽\n", box.TotalPrice)
}

func boxesCommand() *cli.Command {
	return &cli.Command{
		Name:  "boxes",
		Usage: "List your boxes, newest first",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "all", Usage: "every user's boxes (admin)"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return withApp(ctx, func(ctx context.Context, a *app.App) error {
				var (
					list []models.Box
					err  error
				)
				if c.Bool("all") {
					if _, err := requireAdmin(ctx, c, a); err != nil {
						return err
					}
					list, err = a.Gateway.GetAllBoxes(ctx)
					storage.SortNewestFirst(list)
				} else {
					user, uerr := currentUser(ctx, c, a)
					if uerr != nil {
						return uerr
					}
					list, err = a.Gateway.GetBoxesForUser(ctx, user.ID)
				}
				if err != nil {
					return err
				}
				if c.Bool("json") {
					return printJSON(list)
				}
				for _, b := range list {
					fmt.Printf("%s  %s  %-9s %6d ₽  %d products  %s\n", b.ID, b.CreatedAt.Format("2006-01-02 15:04"), b.Status, b.TotalPrice, len(b.Products), b.UserID)
				}
				return nil
			})
		},
	}
}

func orderCommand() *cli.Command {
	return &cli.Command{
		Name:  "order",
		Usage: "Build the WhatsApp order link for a box",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "box", Required: true},
			&cli.StringFlag{Name: "name", Required: true},
			&cli.StringFlag{Name: "phone", Required: true},
			&cli.StringFlag{Name: "address", Required: true},
			&cli.StringFlag{Name: "comment"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return withApp(ctx, func(ctx context.Context, a *app.App) error {
				user, err := currentUser(ctx, c, a)
				if err != nil {
					return err
				}
				box, err := a.Gateway.GetBox(ctx, c.String("box"))
				if err != nil {
					return err
				}
				if box.UserID != user.ID && !user.IsAdmin() {
					return fmt.Errorf("box %s: %w", box.ID, storage.ErrNotFound)
				}
				order, err := a.Orders.Submit(ctx, box, models.OrderContact{
					Name:    c.String("name"),
					Phone:   c.String("phone"),
					Address: c.String("address"),
					Comment: c.String("comment"),
				})
				if err != nil {
					return err
				}
				if c.Bool("json") {
					return printJSON(order)
				}
				fmt.Println(order.Message)
				fmt.Println()
				fmt.Println(order.Link)
				return nil
			})
		},
	}
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:      "status",
		Usage:     "Move a box to another status (admin)",
		ArgsUsage: "<box-id> <ordered|completed|cancelled>",
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 2 {
				return fmt.Errorf("usage: skinbox status <box-id> <status>")
			}
			status, err := models.ParseBoxStatus(c.Args().Get(1))
			if err != nil {
				return err
			}
			return withApp(ctx, func(ctx context.Context, a *app.App) error {
				if _, err := requireAdmin(ctx, c, a); err != nil {
					return err
				}
				box, err := a.Assembler.Transition(ctx, c.Args().Get(0), status)
				if err != nil {
					return err
				}
				fmt.Printf("%s is now %s\n", box.ID, box.Status)
				return nil
			})
		},
	}
}
