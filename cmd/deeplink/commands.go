package main

import (
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/yral-dev/deeplink/internal/errors"
	"github.com/yral-dev/deeplink/pkg/deeplink"
)

// routeView is the printable form of a resolved or built route.
type routeView struct {
	RouteID  string            `json:"route_id"`
	Internal bool              `json:"internal,omitempty"`
	Fields   map[string]string `json:"fields"`
	URL      string            `json:"url,omitempty"`
}

func parseCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <url>",
		Short: "Resolve a link to a route",
		Long: `Resolve a link to a route and print its fields.

Links that match no route, fail to decode or target an internal route
are reported as unresolved.

Examples:
  deeplink parse 'yralm://post/details/42?canisterId=c1'
  deeplink parse --json https://yral.com/profile/abc`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			route := c.svc.ParseURL(cmd.Context(), args[0])
			if deeplink.IsUnknown(route) {
				return errors.New("E304").WithDetail(args[0])
			}
			return c.printRoute(cmd, route, "")
		},
	}
}

func paramsCmd(c *cli) *cobra.Command {
	var payload string

	cmd := &cobra.Command{
		Use:   "params [key=value...]",
		Short: "Resolve a push payload to a route",
		Long: `Resolve a flat parameter map, such as a push notification payload,
to a route. The map must name its route with route_id.

Examples:
  deeplink params route_id=PostDetails postId=42
  deeplink params --payload '{"route_id":"Wallet"}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := map[string]string{}
			if payload != "" {
				decoded, err := decodePayload(payload)
				if err != nil {
					return err
				}
				params = decoded
			}
			fields, err := parseFieldArgs(args)
			if err != nil {
				return err
			}
			for k, v := range fields {
				params[k] = v
			}

			route := c.svc.ParseParams(cmd.Context(), params)
			if deeplink.IsUnknown(route) {
				return errors.New("E304").WithDetailf("route_id %q", params[deeplink.RouteIDKey])
			}
			return c.printRoute(cmd, route, "")
		},
	}

	cmd.Flags().StringVar(&payload, "payload", "", "Payload as a JSON object")

	return cmd
}

func buildCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "build <route_id> [key=value...]",
		Short: "Build a link for a route",
		Long: `Build a link for a route from its field values.

Examples:
  deeplink build PostDetails postId=42 canisterId=c1
  deeplink build --host yral.com --scheme https Wallet`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, ok := c.svc.Table().Lookup(args[0])
			if !ok {
				return errors.New("E302").WithDetail(args[0])
			}
			fields, err := parseFieldArgs(args[1:])
			if err != nil {
				return err
			}

			route, err := entry.Serializer.Decode(fields)
			if err != nil {
				return errors.New("E303").WithDetail(args[0]).Wrap(err)
			}
			link, ok := c.svc.BuildURL(cmd.Context(), route)
			if !ok {
				return errors.New("E303").WithDetail(args[0] + ": route could not be encoded")
			}

			if !c.jsonOut {
				outf(cmd, "%s", link)
				return nil
			}
			return c.printRoute(cmd, route, link)
		},
	}
}

func routesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List registered routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := c.svc.Table().Entries()

			if c.jsonOut {
				type routeInfo struct {
					RouteID  string   `json:"route_id"`
					Pattern  string   `json:"pattern"`
					Params   []string `json:"params,omitempty"`
					Internal bool     `json:"internal"`
				}
				out := make([]routeInfo, 0, len(entries))
				for _, e := range entries {
					out = append(out, routeInfo{
						RouteID:  e.RouteID(),
						Pattern:  e.Pattern,
						Params:   e.Spec.ParamNames(),
						Internal: e.Internal,
					})
				}
				return writeJSON(cmd, out)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			outfTo(w, "ROUTE ID\tPATTERN\tINTERNAL")
			for _, e := range entries {
				outfTo(w, "%s\t%s\t%v", e.RouteID(), e.Pattern, e.Internal)
			}
			return w.Flush()
		},
	}
}

// printRoute prints a route as text or JSON.
func (c *cli) printRoute(cmd *cobra.Command, route deeplink.Route, link string) error {
	view, err := describe(c.svc.Table(), route)
	if err != nil {
		return err
	}
	view.URL = link

	if c.jsonOut {
		return writeJSON(cmd, view)
	}

	outf(cmd, "%s", view.RouteID)
	keys := make([]string, 0, len(view.Fields))
	for k := range view.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		outf(cmd, "  %s: %s", k, view.Fields[k])
	}
	return nil
}

// describe encodes route with its table entry's serializer.
func describe(table *deeplink.Table, route deeplink.Route) (routeView, error) {
	entry, ok := table.EntryFor(route)
	if !ok {
		return routeView{}, errors.New("E302").WithDetailf("%T", route)
	}
	fields, err := entry.Serializer.Encode(route)
	if err != nil {
		return routeView{}, errors.New("E303").WithDetail(entry.RouteID()).Wrap(err)
	}
	return routeView{
		RouteID:  entry.RouteID(),
		Internal: entry.Internal,
		Fields:   fields,
	}, nil
}

// parseFieldArgs parses key=value arguments. Later keys win.
func parseFieldArgs(args []string) (map[string]string, error) {
	fields := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.New("E301").WithDetailf("%q", arg)
		}
		fields[key] = value
	}
	return fields, nil
}

// decodePayload decodes a flat JSON object. Numbers and booleans are kept in
// their JSON spelling and null values are dropped.
func decodePayload(payload string) (map[string]string, error) {
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.New("E305").Wrap(err)
	}
	if raw == nil {
		return nil, errors.New("E305").WithDetail("payload is not an object")
	}

	out := make(map[string]string, len(raw))
	for k, v := range raw {
		switch v := v.(type) {
		case nil:
		case string:
			out[k] = v
		case json.Number:
			out[k] = v.String()
		case bool:
			out[k] = strconv.FormatBool(v)
		default:
			return nil, errors.New("E305").WithDetailf("field %q is not a scalar", k)
		}
	}
	return out, nil
}

// writeJSON prints v as indented JSON.
func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	outf(cmd, "%s", data)
	return nil
}
