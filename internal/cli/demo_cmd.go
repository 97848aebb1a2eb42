package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/storage/memstore"
)

var demoScript = []string{
	"JADVAL_YARAT users (id BUTUN_SON ASOSIY_KALIT, ism MATN, yosh BUTUN_SON)",
	"QO'SH ICHIGA users (id, ism, yosh) QIYMATLAR (1, 'Ali', 25)",
	"QO'SH ICHIGA users (id, ism, yosh) QIYMATLAR (2, 'Vali', 30)",
	"QO'SH ICHIGA users (id, ism, yosh) QIYMATLAR (3, 'Malika', 28)",
	"QO'SH ICHIGA users (id, ism, yosh) QIYMATLAR (4, 'Sardor', 35)",
	"QO'SH ICHIGA users (id, ism, yosh) QIYMATLAR (5, 'Nilufar', 22)",
	"TANLASH * JADVALDAN users",
	"TANLASH ism, yosh JADVALDAN users QAYERDA yosh > 25",
	"TANLASH * JADVALDAN users TARTIBLA yosh KAMAYISH CHEGARA 3",
	"YANGILASH users BELGILASH yosh = 26 QAYERDA ism = 'Ali'",
	"O'CHIR users QAYERDA yosh < 23",
	"TANLASH ism, yosh JADVALDAN users TARTIBLA ism",
}

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the demo script against a fresh in-memory database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.start(cmd.Context(), memstore.New()); err != nil {
				return err
			}

			fmt.Fprintln(a.out, "UZDB DEMO")
			fmt.Fprintln(a.out, "==================================================")
			for _, q := range demoScript {
				fmt.Fprintf(a.out, "\n%s %s\n", promptStyle.Render("uzdb>"), q)
				if err := a.runQuery(q); err != nil {
					return &shownError{err: err}
				}
			}
			fmt.Fprintln(a.out, "\nDemo finished.")
			return nil
		},
	}
}
