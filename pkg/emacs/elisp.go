package emacs

// GenerateElispPackage returns the contents of modeline.el, a small Emacs
// package that splices the exported infrastructure segments into the
// mode line. It shells out to the modeline binary on a timer and caches
// the propertized string between refreshes.
func GenerateElispPackage() string {
	return `;;; modeline.el --- Infrastructure segments for the mode line -*- lexical-binding: t; -*-

;; Author: Tinyland Infrastructure
;; Version: 1.0.0
;; Package-Requires: ((emacs "28.1"))
;; Keywords: tools, mode-line
;; URL: https://gitlab.com/tinyland/lab/modeline

;;; Commentary:

;; This package adds version-control, system, Kubernetes, and tailnet
;; segments to the Emacs mode line, fed by the modeline binary's snapshot
;; cache.  The binary call reads persisted snapshots only, so refreshes
;; are cheap; run the poller host separately to keep the cache warm.
;;
;; Quick start:
;;   (require 'modeline)
;;   (modeline-mode 1)

;;; Code:

(require 'json)

;;;; Customization

(defgroup modeline nil
  "Infrastructure segments for the mode line."
  :group 'mode-line
  :prefix "modeline-")

(defcustom modeline-binary-path "modeline"
  "Path to the modeline binary."
  :type 'string
  :group 'modeline)

(defcustom modeline-refresh-interval 10
  "Segment refresh interval in seconds."
  :type 'integer
  :group 'modeline)

(defcustom modeline-cache-dir
  (expand-file-name "modeline" (or (getenv "XDG_CACHE_HOME")
                                   (expand-file-name ".cache" "~")))
  "Directory where the modeline binary persists poller snapshots."
  :type 'directory
  :group 'modeline)

;;;; Internal variables

(defvar modeline--timer nil
  "Timer for segment refresh.")

(defvar modeline--string ""
  "Cached propertized segment string.")

;;;; Faces

(defface modeline-ok
  '((t :inherit success))
  "Face for healthy segments."
  :group 'modeline)

(defface modeline-warning
  '((t :inherit warning))
  "Face for degraded segments."
  :group 'modeline)

(defface modeline-error
  '((t :inherit error))
  "Face for failing segments."
  :group 'modeline)

;;;; Core functions

(defun modeline--get-json ()
  "Call the modeline binary and return parsed JSON, or nil."
  (let ((output (with-output-to-string
                  (with-current-buffer standard-output
                    (call-process modeline-binary-path nil t nil
                                  "-emacs-json"
                                  "-cache-dir" modeline-cache-dir)))))
    (if (string-empty-p output)
        nil
      (condition-case nil
          (json-parse-string output :object-type 'alist)
        (error nil)))))

(defun modeline--status-face (status)
  "Return the face for STATUS string."
  (pcase status
    ("ok" 'modeline-ok)
    ("warning" 'modeline-warning)
    ("error" 'modeline-error)
    (_ 'shadow)))

(defun modeline--render (data)
  "Build the mode-line string from parsed DATA."
  (let ((segments (alist-get 'segments data)))
    (mapconcat
     (lambda (seg)
       (propertize (alist-get 'text seg)
                   'face (modeline--status-face (alist-get 'status seg))))
     segments " ")))

(defun modeline--refresh ()
  "Refresh the cached segment string and redraw mode lines."
  (let ((data (modeline--get-json)))
    (setq modeline--string
          (if data (concat " " (modeline--render data)) "")))
  (force-mode-line-update t))

(defun modeline-string ()
  "Return the current segment string for mode-line-format."
  modeline--string)

;;;; Mode

;;;###autoload
(define-minor-mode modeline-mode
  "Toggle infrastructure segments in the mode line."
  :global t
  :group 'modeline
  (if modeline-mode
      (progn
        (add-to-list 'global-mode-string '(:eval (modeline-string)) t)
        (setq modeline--timer
              (run-with-timer 0 modeline-refresh-interval
                              #'modeline--refresh)))
    (when modeline--timer
      (cancel-timer modeline--timer)
      (setq modeline--timer nil))
    (setq global-mode-string
          (delete '(:eval (modeline-string)) global-mode-string))
    (setq modeline--string "")))

(provide 'modeline)
;;; modeline.el ends here
`
}
