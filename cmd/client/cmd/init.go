// cmd/client/cmd/init.go
package cmd

import (
	"bagsync/cmd/client/cmd/auth"
	"bagsync/cmd/client/cmd/bag"
	"bagsync/cmd/client/cmd/inspection"
	"bagsync/cmd/client/cmd/item"
)

func init() {
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)
	auth.AuthCmd.AddCommand(auth.WhoamiCmd)

	rootCmd.AddCommand(bag.BagCmd)
	bag.BagCmd.AddCommand(bag.ListCmd)
	bag.BagCmd.AddCommand(bag.CreateCmd)
	bag.BagCmd.AddCommand(bag.ShowCmd)
	bag.BagCmd.AddCommand(bag.UpdateCmd)
	bag.BagCmd.AddCommand(bag.DeleteCmd)
	bag.BagCmd.AddCommand(bag.LabelCmd)
	bag.BagCmd.AddCommand(bag.ScanCmd)
	bag.BagCmd.AddCommand(bag.ExportCmd)
	bag.BagCmd.AddCommand(bag.CountCmd)

	rootCmd.AddCommand(item.ItemCmd)
	item.ItemCmd.AddCommand(item.ListCmd)
	item.ItemCmd.AddCommand(item.CreateCmd)
	item.ItemCmd.AddCommand(item.ShowCmd)
	item.ItemCmd.AddCommand(item.UpdateCmd)
	item.ItemCmd.AddCommand(item.DeleteCmd)
	item.ItemCmd.AddCommand(item.CountCmd)

	rootCmd.AddCommand(inspection.InspectionCmd)
	inspection.InspectionCmd.AddCommand(inspection.ListCmd)
	inspection.InspectionCmd.AddCommand(inspection.AddCmd)
}
