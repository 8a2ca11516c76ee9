package main

import (
	"context"
	"flag"
	"strings"
	"time"

	"github.com/hongminglow/ubu-lite/internal/gateway"
	"github.com/hongminglow/ubu-lite/internal/models"
	"github.com/hongminglow/ubu-lite/internal/models/dto"
)

// setFlags returns the names of the flags given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func optional(set map[string]bool, name, value string) *string {
	if !set[name] {
		return nil
	}
	return &value
}

// servicePatch holds only the service fields given on the command line.
func servicePatch(set map[string]bool, title, description, price string, category int64) dto.ServicePatch {
	p := dto.ServicePatch{
		Title:       optional(set, "title", title),
		Description: optional(set, "description", description),
		Price:       optional(set, "price", price),
	}
	if set["category"] {
		p.Category = &category
	}
	return p
}

// ownServices keeps the services listed on the given creative profile.
func ownServices(profileID int64, services []models.Service) []models.Service {
	own := []models.Service{}
	for _, s := range services {
		if s.CreativeProfile == profileID {
			own = append(own, s)
		}
	}
	return own
}

func cmdCreatives(ctx context.Context, a *app, args []string) error {
	fs := newFlags("creatives")
	id := fs.Int64("id", 0, "show one profile")
	location := fs.String("location", "", "search by city or region")
	if err := parse(fs, args); err != nil {
		return err
	}
	switch {
	case *id != 0:
		return emit(a, a.api.GetCreative(ctx, *id))
	case *location != "":
		return emit(a, a.api.SearchCreatives(ctx, *location))
	default:
		return emit(a, a.api.ListCreatives(ctx))
	}
}

func cmdCategories(ctx context.Context, a *app, args []string) error {
	if err := parse(newFlags("categories"), args); err != nil {
		return err
	}
	return emit(a, a.api.ListCategories(ctx))
}

func cmdServices(ctx context.Context, a *app, args []string) error {
	fs := newFlags("services")
	id := fs.Int64("id", 0, "show one service")
	mine := fs.Bool("mine", false, "only services on your creative profile")
	create := fs.Bool("create", false, "create a service from -title, -description, -price, -category")
	update := fs.Int64("update", 0, "patch this service with the given fields")
	del := fs.Int64("delete", 0, "delete this service")
	title := fs.String("title", "", "title")
	description := fs.String("description", "", "description")
	price := fs.String("price", "", "price, e.g. 120.00")
	category := fs.Int64("category", 0, "category id")
	if err := parse(fs, args); err != nil {
		return err
	}
	set := setFlags(fs)
	patch := servicePatch(set, *title, *description, *price, *category)

	switch {
	case *create:
		if *title == "" || *price == "" {
			return usagef("-create needs -title and -price")
		}
		return emit(a, a.api.CreateService(ctx, dto.ServiceInput{
			Title:       *title,
			Description: *description,
			Category:    patch.Category,
			Price:       *price,
		}))
	case *update != 0:
		return emit(a, a.api.UpdateService(ctx, *update, patch))
	case *del != 0:
		if err := a.api.DeleteService(ctx, *del).Err(); err != nil {
			return err
		}
		return a.print(map[string]int64{"deleted": *del})
	case *id != 0:
		return emit(a, a.api.GetService(ctx, *id))
	case *mine:
		profile, err := a.api.GetMyProfile(ctx).Get()
		if err != nil {
			return err
		}
		all, err := a.api.ListOwnServices(ctx).Get()
		if err != nil {
			return err
		}
		return a.print(ownServices(profile.ID, all.Items))
	default:
		return emit(a, a.api.ListServices(ctx))
	}
}

func cmdProfile(ctx context.Context, a *app, args []string) error {
	fs := newFlags("profile")
	bio := fs.String("bio", "", "bio")
	skills := fs.String("skills", "", "comma separated skills")
	rate := fs.String("rate", "", "hourly rate")
	city := fs.String("city", "", "city")
	region := fs.String("region", "", "region")
	links := fs.String("links", "", "portfolio links")
	avatar := fs.String("avatar", "", "path of an avatar image to upload")
	if err := parse(fs, args); err != nil {
		return err
	}
	set := setFlags(fs)
	fields := []struct {
		flag, field string
		value       *string
	}{
		{"bio", "bio", bio},
		{"skills", "skills", skills},
		{"rate", "hourly_rate", rate},
		{"city", "city", city},
		{"region", "region", region},
		{"links", "portfolio_links", links},
	}

	if *avatar != "" {
		form := gateway.NewForm()
		for _, f := range fields {
			if set[f.flag] {
				form.Field(f.field, *f.value)
			}
		}
		if err := form.FileFromPath("avatar", *avatar); err != nil {
			return usagef("%v", err)
		}
		return emit(a, a.api.UpdateMyProfileMultipart(ctx, form))
	}
	if len(set) == 0 {
		return emit(a, a.api.GetMyProfile(ctx))
	}
	return emit(a, a.api.UpdateMyProfile(ctx, profilePatch(set, *bio, *skills, *rate, *city, *region, *links)))
}

func profilePatch(set map[string]bool, bio, skills, rate, city, region, links string) dto.ProfilePatch {
	return dto.ProfilePatch{
		Bio:            optional(set, "bio", bio),
		Skills:         optional(set, "skills", skills),
		HourlyRate:     optional(set, "rate", rate),
		City:           optional(set, "city", city),
		Region:         optional(set, "region", region),
		PortfolioLinks: optional(set, "links", links),
	}
}

// parseDate accepts RFC 3339 or a bare date.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, usagef("invalid date %q: want RFC 3339 or YYYY-MM-DD", s)
	}
	return t, nil
}

func cmdBookings(ctx context.Context, a *app, args []string) error {
	fs := newFlags("bookings")
	id := fs.Int64("id", 0, "show one booking")
	create := fs.Bool("create", false, "book -service on -date")
	service := fs.Int64("service", 0, "service id to book")
	date := fs.String("date", "", "session date, RFC 3339 or YYYY-MM-DD")
	duration := fs.Int("duration", 0, "duration in minutes")
	notes := fs.String("notes", "", "notes for the creative")
	approve := fs.Int64("approve", 0, "approve this booking (creative)")
	decline := fs.Int64("decline", 0, "decline this booking (creative)")
	schedule := fs.Int64("schedule", 0, "set the meeting link of this booking (creative)")
	meet := fs.String("meet", "", "meeting URL for -schedule")
	if err := parse(fs, args); err != nil {
		return err
	}

	switch {
	case *create:
		if *service == 0 || *date == "" {
			return usagef("-create needs -service and -date")
		}
		when, err := parseDate(*date)
		if err != nil {
			return err
		}
		return emit(a, a.api.CreateBooking(ctx, dto.BookingInput{
			Service:         *service,
			Date:            when,
			DurationMinutes: *duration,
			Notes:           *notes,
		}))
	case *approve != 0:
		return emit(a, a.api.ApproveBooking(ctx, *approve))
	case *decline != 0:
		return emit(a, a.api.DeclineBooking(ctx, *decline))
	case *schedule != 0:
		if *meet == "" {
			return usagef("-schedule needs -meet")
		}
		return emit(a, a.api.ScheduleBooking(ctx, *schedule, dto.ScheduleInput{MeetURL: *meet, DurationMinutes: *duration}))
	case *id != 0:
		return emit(a, a.api.GetBooking(ctx, *id))
	default:
		return emit(a, a.api.ListBookings(ctx))
	}
}

func cmdMessages(ctx context.Context, a *app, args []string) error {
	fs := newFlags("messages")
	booking := fs.Int64("booking", 0, "booking id")
	send := fs.String("send", "", "post this message")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *booking == 0 {
		return usagef("-booking is required")
	}
	if *send != "" {
		return emit(a, a.api.SendMessage(ctx, *booking, *send))
	}
	return emit(a, a.api.ListMessages(ctx, *booking))
}

func cmdPortfolio(ctx context.Context, a *app, args []string) error {
	fs := newFlags("portfolio")
	add := fs.Bool("add", false, "upload -file or link -url")
	title := fs.String("title", "", "item title")
	media := fs.String("media", "", "image, video or link")
	file := fs.String("file", "", "path of the file to upload")
	link := fs.String("url", "", "external URL")
	del := fs.Int64("delete", 0, "delete this item")
	if err := parse(fs, args); err != nil {
		return err
	}

	switch {
	case *add:
		if *file == "" && *link == "" {
			return usagef("-add needs -file or -url")
		}
		form := gateway.NewForm().Field("title", *title)
		mediaType := *media
		if mediaType == "" && *file == "" {
			mediaType = "link"
		}
		if mediaType != "" {
			form.Field("media_type", strings.ToLower(mediaType))
		}
		if *link != "" {
			form.Field("external_url", *link)
		}
		if *file != "" {
			if err := form.FileFromPath("file", *file); err != nil {
				return usagef("%v", err)
			}
		}
		return emit(a, a.api.CreatePortfolioItem(ctx, form))
	case *del != 0:
		if err := a.api.DeletePortfolioItem(ctx, *del).Err(); err != nil {
			return err
		}
		return a.print(map[string]int64{"deleted": *del})
	default:
		return emit(a, a.api.ListPortfolio(ctx))
	}
}

func cmdWallet(ctx context.Context, a *app, args []string) error {
	fs := newFlags("wallet")
	history := fs.Bool("history", false, "list withdrawal requests instead")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *history {
		return emit(a, a.api.ListWithdrawals(ctx))
	}
	return emit(a, a.api.GetWallet(ctx))
}

func cmdWithdraw(ctx context.Context, a *app, args []string) error {
	fs := newFlags("withdraw")
	amount := fs.Float64("amount", 0, "amount to withdraw; omit for the whole available balance")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *amount < 0 {
		return usagef("-amount must not be negative")
	}
	return emit(a, a.api.DemoWithdraw(ctx, *amount))
}

func cmdEscrows(ctx context.Context, a *app, args []string) error {
	fs := newFlags("escrows")
	fund := fs.Bool("fund", false, "create a demo paid order with a funded escrow")
	fulfill := fs.Int64("fulfill", 0, "mark this escrow fulfilled")
	side := fs.String("side", "client", "client or creative, for -fulfill")
	if err := parse(fs, args); err != nil {
		return err
	}

	switch {
	case *fund:
		return emit(a, a.api.CreateDemoFundedOrder(ctx))
	case *fulfill != 0:
		switch strings.ToLower(*side) {
		case "client":
			return emit(a, a.api.ClientFulfill(ctx, *fulfill))
		case "creative":
			return emit(a, a.api.CreativeFulfill(ctx, *fulfill))
		default:
			return usagef("-side must be client or creative")
		}
	default:
		return emit(a, a.api.ListEscrows(ctx))
	}
}

func cmdOrders(ctx context.Context, a *app, args []string) error {
	fs := newFlags("orders")
	id := fs.Int64("id", 0, "show one order")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id != 0 {
		return emit(a, a.api.GetOrder(ctx, *id))
	}
	return emit(a, a.api.ListOrders(ctx))
}
