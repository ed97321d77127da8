package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"rankwatch/internal/di"
	"rankwatch/internal/structures"
	"strings"
	"syscall"

	flag "github.com/spf13/pflag"
)

func main() {
	cli := &structures.CliFlags{}
	opts := structures.ChartFlags{}

	flag.StringVarP(&cli.ConfigPath, "config", "c", "", "path to the YAML config file")
	flag.BoolVar(&cli.DebugMode, "debug", false, "enable debug logging")

	flag.BoolVarP(&opts.Inverted, "inverted", "i", false, "best rank at the top of the y axis")
	flag.BoolVarP(&opts.Detailed, "detailed", "d", false, "mark best and worst rank per period")
	flag.BoolVarP(&opts.Video, "video", "v", false, "render an animation instead of an image")
	flag.IntVarP(&opts.Duration, "duration", "t", 10, "animation length in seconds")
	flag.BoolVarP(&opts.Pin, "pin", "p", false, "pin the uploaded message")
	flag.BoolVarP(&opts.Send, "send", "s", false, "upload the result to the history channel")
	flag.StringVar(&opts.StartDate, "start-date", "", "first day to plot (YYYY-MM-DD)")
	flag.StringVar(&opts.EndDate, "end-date", "", "plot up to midnight of this day (YYYY-MM-DD)")
	flag.BoolVarP(&opts.ZoomedIn, "zoomed-in", "z", false, "fit the y axis to the data")
	flag.BoolVarP(&opts.Backup, "backup", "b", false, "write a CSV backup of the full history")
	flag.BoolVarP(&opts.ForceFetch, "force-fetch", "f", false, "ignore the latest backup and walk the whole channel")
	flag.BoolVarP(&opts.Notify, "notify", "n", false, "mention the channel in the upload")
	// --start_date and --start-date are the same flag
	flag.CommandLine.SetNormalizeFunc(func(_ *flag.FlagSet, name string) flag.NormalizedName {
		return flag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
	flag.Parse()

	tool, err := di.InitChartTool(cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init: %s\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = tool.Run(ctx, opts)
	stop()
	tool.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
