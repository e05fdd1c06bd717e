package main

import (
	"github.com/spf13/cobra"

	"pdfdesk/internal/convert"
	handlers "pdfdesk/internal/http/handler"
	"pdfdesk/internal/service"
)

func converterCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "converter",
		Short: "Serve the PDF to Word converter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := newServer(ctx, "pdfdesk-converter", "8080", port)
			if err != nil {
				return err
			}

			svc := service.NewConversionService(s.store, convert.PDFToDOCX{}, s.pipeline, s.log)

			handlers.RegisterOpsRoutes(s.app, nil, s.reg)
			handlers.RegisterConverterRoutes(s.app, svc)

			return s.run(ctx)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT, default 8080)")
	return cmd
}
